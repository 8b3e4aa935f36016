package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/marquee-cinema/marquee/internal/domain"
)

// Users is the user registry. Usernames are unique; the per-user booking list
// is maintained here but only ever written by the ledger.
type Users struct {
	mu         sync.RWMutex
	users      map[string]*domain.User
	byUsername map[string]string
	order      []string
}

func NewUsers() *Users {
	return &Users{
		users:      make(map[string]*domain.User),
		byUsername: make(map[string]string),
	}
}

func (u *Users) Register(username, email, plaintext string, role domain.Role) (*domain.User, error) {
	user := &domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Role:     role,
	}

	if err := user.Password.Set(plaintext); err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.byUsername[username]; ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUsernameTaken, username)
	}

	u.users[user.ID] = user
	u.byUsername[username] = user.ID
	u.order = append(u.order, user.ID)

	return user, nil
}

func (u *Users) ByID(id string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, ok := u.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, id)
	}

	return user, nil
}

func (u *Users) ByUsername(username string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	id, ok := u.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("%w: username %q", domain.ErrNotFound, username)
	}

	return u.users[id], nil
}

func (u *Users) attachBooking(userID, bookingID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if user, ok := u.users[userID]; ok {
		user.Bookings = append(user.Bookings, bookingID)
	}
}

func (u *Users) exists(userID string) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()

	_, ok := u.users[userID]

	return ok
}
