package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// Booking ties a user, a showtime and a seat set together. MovieTitle is a
// snapshot taken at booking time and does not follow later catalog edits.
// A booking is immutable except for the single Confirmed -> Cancelled
// transition; cancelled bookings are kept for history, never deleted.
type Booking struct {
	ID          string
	UserID      string
	MovieTitle  string
	ShowtimeID  string
	Seats       []int
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Status      BookingStatus
}
