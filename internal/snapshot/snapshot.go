// Package snapshot defines the persisted state schema. The core hands a full
// Snapshot to a Gateway after every mutating operation and rebuilds its
// in-memory state from one at startup; the schema must round-trip exactly.
package snapshot

import (
	"context"
	"errors"
)

const (
	// DateLayout and TimeLayout are the showtime display labels; BookingDateLayout
	// is the creation timestamp format bookings are persisted with.
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	BookingDateLayout = "2006-01-02 15:04:05"

	// LegacyTotalSeats is the capacity assumed for showtime records persisted
	// before total_seats existed. This is a deliberate migration rule; every
	// other missing required field is a schema violation.
	LegacyTotalSeats = 50
)

// ErrNoSnapshot is returned by Gateway.Load when nothing has been saved yet;
// callers start from an empty state.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Gateway loads and saves full state snapshots. Implementations own their
// transport, timeouts and retries; the core only ever sees a Snapshot or an
// error.
type Gateway interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

type Snapshot struct {
	Movies   []Movie   `json:"movies"`
	Users    []User    `json:"users"`
	Bookings []Booking `json:"bookings"`
}

type Movie struct {
	MovieID     string     `json:"movie_id"`
	Title       string     `json:"title"`
	Genre       string     `json:"genre"`
	Duration    int        `json:"duration"`
	Rating      string     `json:"rating"`
	Description string     `json:"description"`
	Price       Amount     `json:"price"`
	Showtimes   []Showtime `json:"showtimes"`
}

type Showtime struct {
	ShowtimeID  string `json:"showtime_id"`
	MovieID     string `json:"movie_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Theater     string `json:"theater"`
	TotalSeats  *int   `json:"total_seats"`
	BookedSeats []int  `json:"booked_seats"`
}

type User struct {
	UserID       string   `json:"user_id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	IsAdmin      bool     `json:"is_admin"`
	PasswordHash []byte   `json:"password_hash,omitempty"`
	Bookings     []string `json:"bookings"`
}

type Booking struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	MovieTitle  string `json:"movie_title"`
	ShowtimeID  string `json:"showtime_id"`
	SeatNumbers []int  `json:"seat_numbers"`
	TotalAmount Amount `json:"total_amount"`
	BookingDate string `json:"booking_date"`
	Status      string `json:"status"`
}
