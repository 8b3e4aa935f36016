package app

import (
	"errors"
	"net/http"

	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
)

const ErrInvalidCredentials = "Invalid username or password"

func (app *application) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	user, err := app.store.Users.ByUsername(input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same response as a wrong password to avoid username probing.
			app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	matches, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !matches {
		app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	// Rotate the session token on privilege change.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), SessionKeyUserId.String(), user.ID)

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	err := app.sessionManager.Destroy(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
