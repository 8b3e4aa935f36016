package app

import (
	"errors"
	"net/http"

	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
)

func (app *application) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterRequest

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

	user, err := app.store.Users.Register(input.Username, input.Email, input.Password, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			app.logger.Warn("registration attempt for taken username", "username", input.Username)
			app.conflictResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.RegisterResponse{
		UserResponse: toUserResponse(user),
		Persistence:  api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.contextGetSession(r)

	user, err := app.store.Users.ByID(sess.UserID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toUserResponse(user *domain.User) api.UserResponse {
	return api.UserResponse{
		Id:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	}
}
