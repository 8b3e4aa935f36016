package domain

import (
	"github.com/shopspring/decimal"
)

type Movie struct {
	ID          string
	Title       string
	Genre       string
	Duration    int
	Rating      string
	Description string
	Price       decimal.Decimal
	Showtimes   []*Showtime
}

// Showtime is one scheduled screening. Date and Time are the display labels
// the catalog was created with ("2006-01-02" and "15:04"); capacity is fixed
// at creation and all occupancy goes through Seats.
type Showtime struct {
	ID      string
	MovieID string
	Date    string
	Time    string
	Theater string
	Seats   *SeatMap
}
