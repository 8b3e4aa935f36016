package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/gateway"
	"github.com/marquee-cinema/marquee/internal/snapshot"
	"github.com/marquee-cinema/marquee/internal/store"
	"github.com/marquee-cinema/marquee/internal/validator"
	"github.com/shopspring/decimal"
)

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		validator:      validator.NewValidator(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		sessionManager: scs.New(),
		store:          store.New(gateway.NewMemoryGateway()),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// seedCatalog puts one movie with one 50-seat showtime plus an admin and a
// regular user into the store, and returns the created records.
type seedData struct {
	movie    *domain.Movie
	showtime *domain.Showtime
	admin    *domain.User
	user     *domain.User
}

func seedCatalog(t *testing.T, app *application) seedData {
	t.Helper()

	movie, err := app.store.Catalog.AddMovie(store.MovieParams{
		Title:       "Inception",
		Genre:       "Sci-Fi/Thriller",
		Duration:    148,
		Rating:      "PG-13",
		Description: "A thief who steals corporate secrets through dream-sharing technology.",
		Price:       decimal.RequireFromString("13.00"),
	})
	if err != nil {
		t.Fatal(err)
	}

	showtime, err := app.store.Catalog.AddShowtime(movie.ID, "2026-09-01", "19:30", "Theater A", 50)
	if err != nil {
		t.Fatal(err)
	}

	admin, err := app.store.Users.Register("admin", "admin@marquee.test", "Admin123!pass", domain.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	user, err := app.store.Users.Register("sudip", "sudip@email.com", "User123!pass", domain.RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	return seedData{movie: movie, showtime: showtime, admin: admin, user: user}
}

func storeWithGateway(gw snapshot.Gateway) *store.Store {
	return store.New(gw)
}

func sessionFor(user *domain.User) domain.Session {
	return domain.Session{UserID: user.ID, Role: user.Role}
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withSession attaches the resolved session the authentication middleware
// would normally put into the request context.
func withSession(r *http.Request, user *domain.User) *http.Request {
	sess := domain.Session{UserID: user.ID, Role: user.Role}

	return r.WithContext(context.WithValue(r.Context(), sessionCtxKey, sess))
}

// withScsContext gives the request a loaded scs session context, needed by
// handlers that write session state (login, logout).
func withScsContext(t *testing.T, app *application, r *http.Request) *http.Request {
	t.Helper()

	ctx, err := app.sessionManager.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	rctx.URLParams.Add(key, value)

	return r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	return resp
}
