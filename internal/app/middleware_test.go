package app

import (
	"net/http"
	"testing"

	"github.com/marquee-cinema/marquee/internal/domain"
)

func TestRequireAuthentication(t *testing.T) {
	okHandler := func(app *application) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Reaching here means the middleware resolved a session.
			_ = app.contextGetSession(r)
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("no session", func(t *testing.T) {
		app := newTestApplication()
		seedCatalog(t, app)

		w, r := executeRequest(t, http.MethodGet, "/bookings", nil)
		r = withScsContext(t, app, r)

		app.requireAuthentication(okHandler(app)).ServeHTTP(w, r)

		if got := w.Code; got != http.StatusUnauthorized {
			t.Errorf("status = %v, want %v", got, http.StatusUnauthorized)
		}

		checkErrorResponse(t, w, http.StatusUnauthorized, ErrUnauthorizedAccess)
	})

	t.Run("stale session for deleted user", func(t *testing.T) {
		app := newTestApplication()
		seedCatalog(t, app)

		w, r := executeRequest(t, http.MethodGet, "/bookings", nil)
		r = withScsContext(t, app, r)
		app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), "gone-user-id")

		app.requireAuthentication(okHandler(app)).ServeHTTP(w, r)

		if got := w.Code; got != http.StatusUnauthorized {
			t.Errorf("status = %v, want %v", got, http.StatusUnauthorized)
		}

		// The dangling reference is dropped from the session.
		if userId := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String()); userId != "" {
			t.Errorf("stale user id still in session: %v", userId)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		app := newTestApplication()
		seeded := seedCatalog(t, app)

		w, r := executeRequest(t, http.MethodGet, "/bookings", nil)
		r = withScsContext(t, app, r)
		app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), seeded.user.ID)

		app.requireAuthentication(okHandler(app)).ServeHTTP(w, r)

		if got := w.Code; got != http.StatusOK {
			t.Errorf("status = %v, want %v", got, http.StatusOK)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		role       domain.Role
		wantStatus int
	}{
		{name: "admin passes", role: domain.RoleAdmin, wantStatus: http.StatusOK},
		{name: "regular user is refused", role: domain.RoleUser, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication()
			seeded := seedCatalog(t, app)

			caller := seeded.admin
			if tt.role == domain.RoleUser {
				caller = seeded.user
			}

			w, r := executeRequest(t, http.MethodPost, "/movies", nil)
			r = withSession(r, caller)

			app.requireAdmin(next).ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("status = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}
