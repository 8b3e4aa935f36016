package snapshot

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchemaError reports a snapshot that cannot be trusted: a required field is
// missing or an invariant the core relies on does not hold. Loading stops at
// the first violation rather than silently defaulting.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("snapshot schema: %s: %s", e.Path, e.Reason)
}

func schemaErrorf(path, format string, args ...any) error {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

// Encode renders the snapshot in the persisted wire form.
func Encode(snap *Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses and validates persisted bytes. The one tolerated omission is
// a showtime without total_seats, which decodes with LegacyTotalSeats.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot

	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot schema: %w", err)
	}

	if err := validate(&snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

func validate(snap *Snapshot) error {
	showtimes := make(map[string]*Showtime)
	booked := make(map[string]map[int]bool)

	movieIDs := make(map[string]bool)
	for i := range snap.Movies {
		movie := &snap.Movies[i]
		path := fmt.Sprintf("movies[%d]", i)

		switch {
		case movie.MovieID == "":
			return schemaErrorf(path, "missing movie_id")
		case movieIDs[movie.MovieID]:
			return schemaErrorf(path, "duplicate movie_id %q", movie.MovieID)
		case movie.Title == "":
			return schemaErrorf(path, "missing title")
		case movie.Duration <= 0:
			return schemaErrorf(path, "duration must be positive")
		case !movie.Price.IsPositive():
			return schemaErrorf(path, "price must be positive")
		}
		movieIDs[movie.MovieID] = true

		for j := range movie.Showtimes {
			st := &movie.Showtimes[j]
			path := fmt.Sprintf("%s.showtimes[%d]", path, j)

			if st.ShowtimeID == "" {
				return schemaErrorf(path, "missing showtime_id")
			}
			if _, ok := showtimes[st.ShowtimeID]; ok {
				return schemaErrorf(path, "duplicate showtime_id %q", st.ShowtimeID)
			}
			if st.MovieID != movie.MovieID {
				return schemaErrorf(path, "movie_id %q does not match owning movie %q", st.MovieID, movie.MovieID)
			}

			if st.TotalSeats == nil {
				legacy := LegacyTotalSeats
				st.TotalSeats = &legacy
			}
			if *st.TotalSeats <= 0 {
				return schemaErrorf(path, "total_seats must be positive")
			}

			seats := make(map[int]bool, len(st.BookedSeats))
			for _, seat := range st.BookedSeats {
				if seat < 1 || seat > *st.TotalSeats {
					return schemaErrorf(path, "booked seat %d out of range [1,%d]", seat, *st.TotalSeats)
				}
				if seats[seat] {
					return schemaErrorf(path, "booked seat %d listed twice", seat)
				}
				seats[seat] = true
			}

			showtimes[st.ShowtimeID] = st
			booked[st.ShowtimeID] = seats
		}
	}

	userIDs := make(map[string]bool)
	usernames := make(map[string]bool)
	for i := range snap.Users {
		user := &snap.Users[i]
		path := fmt.Sprintf("users[%d]", i)

		switch {
		case user.UserID == "":
			return schemaErrorf(path, "missing user_id")
		case userIDs[user.UserID]:
			return schemaErrorf(path, "duplicate user_id %q", user.UserID)
		case user.Username == "":
			return schemaErrorf(path, "missing username")
		case usernames[user.Username]:
			return schemaErrorf(path, "duplicate username %q", user.Username)
		}
		userIDs[user.UserID] = true
		usernames[user.Username] = true
	}

	bookingIDs := make(map[string]bool)
	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		path := fmt.Sprintf("bookings[%d]", i)

		switch {
		case b.BookingID == "":
			return schemaErrorf(path, "missing booking_id")
		case bookingIDs[b.BookingID]:
			return schemaErrorf(path, "duplicate booking_id %q", b.BookingID)
		case b.UserID == "":
			return schemaErrorf(path, "missing user_id")
		case b.ShowtimeID == "":
			return schemaErrorf(path, "missing showtime_id")
		case len(b.SeatNumbers) == 0:
			return schemaErrorf(path, "seat_numbers must not be empty")
		}
		bookingIDs[b.BookingID] = true

		if b.Status != "Confirmed" && b.Status != "Cancelled" {
			return schemaErrorf(path, "unknown status %q", b.Status)
		}
		if _, err := time.Parse(BookingDateLayout, b.BookingDate); err != nil {
			return schemaErrorf(path, "booking_date %q is not in %q form", b.BookingDate, BookingDateLayout)
		}

		seen := make(map[int]bool, len(b.SeatNumbers))
		for _, seat := range b.SeatNumbers {
			if seen[seat] {
				return schemaErrorf(path, "seat %d listed twice", seat)
			}
			seen[seat] = true
		}

		// A Confirmed booking must be backed by actual occupancy, otherwise
		// restoring it would fabricate seats the seat map never reserved.
		if b.Status == "Confirmed" {
			seats, ok := booked[b.ShowtimeID]
			if !ok {
				return schemaErrorf(path, "confirmed booking references unknown showtime %q", b.ShowtimeID)
			}
			for _, seat := range b.SeatNumbers {
				if !seats[seat] {
					return schemaErrorf(path, "confirmed booking holds seat %d not marked booked in showtime %q", seat, b.ShowtimeID)
				}
			}
		}
	}

	return nil
}
