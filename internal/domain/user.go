package domain

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User's Bookings slice is a fast per-user index of booking ids; the ledger
// remains the source of truth for the records themselves.
type User struct {
	ID       string
	Username string
	Email    string
	Role     Role
	Password password
	Bookings []string
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type password struct {
	plaintext *string
	Hash      []byte
}

func (p *password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}

	p.plaintext = &plaintext
	p.Hash = hash

	return nil
}

func (p *password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.Hash, []byte(plaintext))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// SetPasswordHash installs an already-computed bcrypt hash, used when
// rebuilding users from a persisted snapshot.
func (p *password) SetHash(hash []byte) {
	p.plaintext = nil
	p.Hash = hash
}
