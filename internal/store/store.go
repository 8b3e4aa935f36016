// Package store holds the in-memory state of the system: the movie catalog,
// the user registry and the booking ledger. The Store binds the three
// together with a snapshot gateway; every mutating entry point commits in
// memory first and then asks the gateway to persist a freshly captured
// snapshot, outside every lock.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/snapshot"
)

type Store struct {
	Catalog *Catalog
	Users   *Users
	Ledger  *Ledger

	gateway snapshot.Gateway
}

func New(gateway snapshot.Gateway) *Store {
	catalog := NewCatalog()
	users := NewUsers()

	return &Store{
		Catalog: catalog,
		Users:   users,
		Ledger:  NewLedger(catalog, users),
		gateway: gateway,
	}
}

// Load rebuilds the in-memory state from the gateway's snapshot. A gateway
// with nothing stored yet yields an empty state, not an error.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.gateway.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			return nil
		}

		return &domain.PersistenceError{Op: "load", Err: err}
	}

	if err := s.restore(snap); err != nil {
		return &domain.PersistenceError{Op: "load", Err: err}
	}

	return nil
}

// Persist captures the current state and hands it to the gateway. The capture
// takes each lock briefly; the gateway call itself runs with no lock held, so
// slow persistence never blocks bookings. A failed save leaves the in-memory
// commit intact and is reported so the caller can retry it.
func (s *Store) Persist(ctx context.Context) error {
	snap := s.capture()

	if err := s.gateway.Save(ctx, snap); err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	return nil
}

// RemoveMovie deletes a movie and all of its showtimes. It is blocked with
// ErrConflict while any Confirmed booking references one of those showtimes;
// cancelled bookings are history and do not block.
func (s *Store) RemoveMovie(id string) error {
	c := s.Catalog

	c.mu.Lock()
	defer c.mu.Unlock()

	movie, ok := c.movies[id]
	if !ok {
		return fmt.Errorf("%w: movie %q", domain.ErrNotFound, id)
	}

	ids := make(map[string]bool, len(movie.Showtimes))
	for _, showtime := range movie.Showtimes {
		ids[showtime.ID] = true
	}

	if s.Ledger.hasConfirmedForLocked(ids) {
		return fmt.Errorf("%w: movie %q has confirmed bookings", domain.ErrConflict, id)
	}

	c.removeMovieLocked(movie)

	return nil
}

// RemoveShowtime deletes one showtime, with the same Confirmed-booking guard
// as RemoveMovie.
func (s *Store) RemoveShowtime(id string) error {
	c := s.Catalog

	c.mu.Lock()
	defer c.mu.Unlock()

	showtime, ok := c.showtimes[id]
	if !ok {
		return fmt.Errorf("%w: showtime %q", domain.ErrNotFound, id)
	}

	if s.Ledger.hasConfirmedForLocked(map[string]bool{id: true}) {
		return fmt.Errorf("%w: showtime %q has confirmed bookings", domain.ErrConflict, id)
	}

	c.removeShowtimeLocked(showtime)

	return nil
}
