package domain

import "fmt"

// Session is the caller's identity for one request. It is always passed
// explicitly to operations that need it; nothing in the core holds a
// "current user".
type Session struct {
	UserID string
	Role   Role
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// RequireAdmin gates administrative mutations.
func RequireAdmin(s Session) error {
	if !s.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrPermissionDenied)
	}

	return nil
}

// RequireOwnerOrAdmin gates access to a booking: its owner or an admin.
func RequireOwnerOrAdmin(s Session, b *Booking) error {
	if s.UserID != b.UserID && !s.IsAdmin() {
		return fmt.Errorf("%w: not the booking owner", ErrPermissionDenied)
	}

	return nil
}
