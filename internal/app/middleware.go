package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/marquee-cinema/marquee/internal/domain"
)

// requireAuthentication resolves the scs session into an explicit
// domain.Session value carrying the caller's id and role. Everything past
// this point works with that value; no handler reads ambient session state.
func (app *application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetString(r.Context(), SessionKeyUserId.String())
		if userId == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		user, err := app.store.Users.ByID(userId)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Stale session for a user that no longer exists.
				app.sessionManager.Remove(r.Context(), SessionKeyUserId.String())
				app.unauthorizedAccessResponse(w, r)
				return
			}

			app.serverErrorResponse(w, r, err)
			return
		}

		sess := domain.Session{UserID: user.ID, Role: user.Role}

		ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := app.contextGetSession(r)

		if err := domain.RequireAdmin(sess); err != nil {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
