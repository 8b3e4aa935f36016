package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/shopspring/decimal"
)

// Ledger is the booking state machine and the only writer of booking records.
// Records are append-mostly: once created, the single permitted mutation is
// the Confirmed -> Cancelled transition, and nothing is ever deleted.
type Ledger struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	order    []string

	catalog *Catalog
	users   *Users
	now     func() time.Time
}

func NewLedger(catalog *Catalog, users *Users) *Ledger {
	return &Ledger{
		bookings: make(map[string]*domain.Booking),
		catalog:  catalog,
		users:    users,
		now:      time.Now,
	}
}

// CreateBooking reserves seats and records the booking as one logical
// transaction. The catalog read lock is held for the whole operation so a
// concurrent catalog removal cannot slip between the showtime lookup and the
// reservation; if anything fails after the seats were reserved, the
// reservation is rolled back before returning.
func (l *Ledger) CreateBooking(userID, showtimeID string, seats []int) (domain.Booking, error) {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	showtime, movie, err := l.catalog.findShowtimeLocked(showtimeID)
	if err != nil {
		return domain.Booking{}, err
	}

	if !l.users.exists(userID) {
		return domain.Booking{}, fmt.Errorf("%w: user %q", domain.ErrNotFound, userID)
	}

	if err := showtime.Seats.Reserve(seats); err != nil {
		return domain.Booking{}, err
	}

	booking := &domain.Booking{
		ID:          uuid.NewString(),
		UserID:      userID,
		MovieTitle:  movie.Title,
		ShowtimeID:  showtimeID,
		Seats:       sortedSeats(seats),
		TotalAmount: movie.Price.Mul(decimal.NewFromInt(int64(len(seats)))),
		CreatedAt:   l.now(),
		Status:      domain.BookingConfirmed,
	}

	if err := l.append(booking); err != nil {
		// Seats were reserved but no record exists for them: undo the
		// reservation rather than leave seats locked with no owner.
		if relErr := showtime.Seats.Release(seats); relErr != nil {
			return domain.Booking{}, fmt.Errorf("ledger inconsistency: rollback failed: %v (after: %v)", relErr, err)
		}

		return domain.Booking{}, err
	}

	l.users.attachBooking(userID, booking.ID)

	return *booking, nil
}

func (l *Ledger) append(booking *domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.bookings[booking.ID]; ok {
		return fmt.Errorf("%w: booking id %q already exists", domain.ErrConflict, booking.ID)
	}

	l.bookings[booking.ID] = booking
	l.order = append(l.order, booking.ID)

	return nil
}

// CancelBooking releases the booking's seats and marks it Cancelled. The
// caller must own the booking or be an admin. Cancelling twice is a Conflict
// no-op; a seat release that fails on a Confirmed booking means the ledger
// and the seat map disagree, which is surfaced as an internal fault rather
// than a retryable user error.
func (l *Ledger) CancelBooking(sess domain.Session, bookingID string) (domain.Booking, error) {
	l.catalog.mu.RLock()
	defer l.catalog.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	booking, ok := l.bookings[bookingID]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: booking %q", domain.ErrNotFound, bookingID)
	}

	if err := domain.RequireOwnerOrAdmin(sess, booking); err != nil {
		return domain.Booking{}, err
	}

	if booking.Status == domain.BookingCancelled {
		return domain.Booking{}, fmt.Errorf("%w: booking %q is already cancelled", domain.ErrConflict, bookingID)
	}

	showtime, _, err := l.catalog.findShowtimeLocked(booking.ShowtimeID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("ledger inconsistency: confirmed booking %q references missing showtime %q", bookingID, booking.ShowtimeID)
	}

	if err := showtime.Seats.Release(booking.Seats); err != nil {
		return domain.Booking{}, fmt.Errorf("ledger inconsistency: %v", err)
	}

	booking.Status = domain.BookingCancelled

	return *booking, nil
}

// BookingsForUser returns the user's bookings in creation order.
func (l *Ledger) BookingsForUser(userID string) []domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	var bookings []domain.Booking
	for _, id := range l.order {
		if b := l.bookings[id]; b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}

	return bookings
}

// AllBookings returns every booking in creation order. Callers gate this
// behind RequireAdmin.
func (l *Ledger) AllBookings() []domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()

	bookings := make([]domain.Booking, 0, len(l.order))
	for _, id := range l.order {
		bookings = append(bookings, *l.bookings[id])
	}

	return bookings
}

func (l *Ledger) BookingByID(id string) (domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	booking, ok := l.bookings[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: booking %q", domain.ErrNotFound, id)
	}

	return *booking, nil
}

// hasConfirmedForLocked reports whether any Confirmed booking references one
// of the given showtimes. Callers hold the catalog write lock, which keeps
// the answer stable until the structural edit it guards completes.
func (l *Ledger) hasConfirmedForLocked(showtimeIDs map[string]bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, booking := range l.bookings {
		if booking.Status == domain.BookingConfirmed && showtimeIDs[booking.ShowtimeID] {
			return true
		}
	}

	return false
}

func sortedSeats(seats []int) []int {
	out := make([]int, len(seats))
	copy(out, seats)
	sort.Ints(out)

	return out
}
