package app

import (
	"net/http"

	"github.com/marquee-cinema/marquee/internal/domain"
)

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	sessionCtxKey    = sessionKey("session")
)

func (s sessionKey) String() string {
	return string(s)
}

// contextGetSession returns the caller's session placed in the request
// context by requireAuthentication. Handlers behind that middleware can rely
// on it being present.
func (app *application) contextGetSession(r *http.Request) domain.Session {
	sess, ok := r.Context().Value(sessionCtxKey).(domain.Session)
	if !ok {
		panic("missing session from context")
	}

	return sess
}
