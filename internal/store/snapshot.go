package store

import (
	"fmt"
	"time"

	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/snapshot"
)

func (s *Store) capture() *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		Movies:   []snapshot.Movie{},
		Users:    []snapshot.User{},
		Bookings: []snapshot.Booking{},
	}

	s.Catalog.mu.RLock()
	for _, id := range s.Catalog.order {
		movie := s.Catalog.movies[id]

		m := snapshot.Movie{
			MovieID:     movie.ID,
			Title:       movie.Title,
			Genre:       movie.Genre,
			Duration:    movie.Duration,
			Rating:      movie.Rating,
			Description: movie.Description,
			Price:       snapshot.NewAmount(movie.Price),
			Showtimes:   []snapshot.Showtime{},
		}

		for _, showtime := range movie.Showtimes {
			total := showtime.Seats.TotalSeats()
			m.Showtimes = append(m.Showtimes, snapshot.Showtime{
				ShowtimeID:  showtime.ID,
				MovieID:     showtime.MovieID,
				Date:        showtime.Date,
				Time:        showtime.Time,
				Theater:     showtime.Theater,
				TotalSeats:  &total,
				BookedSeats: showtime.Seats.Booked(),
			})
		}

		snap.Movies = append(snap.Movies, m)
	}
	s.Catalog.mu.RUnlock()

	s.Users.mu.RLock()
	for _, id := range s.Users.order {
		user := s.Users.users[id]
		bookings := make([]string, len(user.Bookings))
		copy(bookings, user.Bookings)

		snap.Users = append(snap.Users, snapshot.User{
			UserID:       user.ID,
			Username:     user.Username,
			Email:        user.Email,
			IsAdmin:      user.IsAdmin(),
			PasswordHash: user.Password.Hash,
			Bookings:     bookings,
		})
	}
	s.Users.mu.RUnlock()

	s.Ledger.mu.Lock()
	for _, id := range s.Ledger.order {
		booking := s.Ledger.bookings[id]
		seats := make([]int, len(booking.Seats))
		copy(seats, booking.Seats)

		snap.Bookings = append(snap.Bookings, snapshot.Booking{
			BookingID:   booking.ID,
			UserID:      booking.UserID,
			MovieTitle:  booking.MovieTitle,
			ShowtimeID:  booking.ShowtimeID,
			SeatNumbers: seats,
			TotalAmount: snapshot.NewAmount(booking.TotalAmount),
			BookingDate: booking.CreatedAt.Format(snapshot.BookingDateLayout),
			Status:      string(booking.Status),
		})
	}
	s.Ledger.mu.Unlock()

	return snap
}

// restore replaces the in-memory state with a decoded snapshot. The snapshot
// has already passed schema validation, so any reserve failure here is a
// fault worth failing loudly on, not working around.
func (s *Store) restore(snap *snapshot.Snapshot) error {
	catalog := NewCatalog()
	for i := range snap.Movies {
		sm := &snap.Movies[i]

		movie := &domain.Movie{
			ID:          sm.MovieID,
			Title:       sm.Title,
			Genre:       sm.Genre,
			Duration:    sm.Duration,
			Rating:      sm.Rating,
			Description: sm.Description,
			Price:       sm.Price.Decimal,
		}

		for j := range sm.Showtimes {
			st := &sm.Showtimes[j]

			showtime := &domain.Showtime{
				ID:      st.ShowtimeID,
				MovieID: st.MovieID,
				Date:    st.Date,
				Time:    st.Time,
				Theater: st.Theater,
				Seats:   domain.NewSeatMap(*st.TotalSeats),
			}

			if len(st.BookedSeats) > 0 {
				if err := showtime.Seats.Reserve(st.BookedSeats); err != nil {
					return fmt.Errorf("restore showtime %q: %w", st.ShowtimeID, err)
				}
			}

			movie.Showtimes = append(movie.Showtimes, showtime)
			catalog.showtimes[showtime.ID] = showtime
		}

		catalog.movies[movie.ID] = movie
		catalog.order = append(catalog.order, movie.ID)
	}

	users := NewUsers()
	for i := range snap.Users {
		su := &snap.Users[i]

		user := &domain.User{
			ID:       su.UserID,
			Username: su.Username,
			Email:    su.Email,
			Role:     domain.RoleUser,
			Bookings: append([]string{}, su.Bookings...),
		}
		if su.IsAdmin {
			user.Role = domain.RoleAdmin
		}
		user.Password.SetHash(su.PasswordHash)

		users.users[user.ID] = user
		users.byUsername[user.Username] = user.ID
		users.order = append(users.order, user.ID)
	}

	ledger := NewLedger(catalog, users)
	for i := range snap.Bookings {
		sb := &snap.Bookings[i]

		createdAt, err := time.Parse(snapshot.BookingDateLayout, sb.BookingDate)
		if err != nil {
			return fmt.Errorf("restore booking %q: %w", sb.BookingID, err)
		}

		booking := &domain.Booking{
			ID:          sb.BookingID,
			UserID:      sb.UserID,
			MovieTitle:  sb.MovieTitle,
			ShowtimeID:  sb.ShowtimeID,
			Seats:       sortedSeats(sb.SeatNumbers),
			TotalAmount: sb.TotalAmount.Decimal,
			CreatedAt:   createdAt,
			Status:      domain.BookingStatus(sb.Status),
		}

		ledger.bookings[booking.ID] = booking
		ledger.order = append(ledger.order, booking.ID)
	}

	s.Catalog.mu.Lock()
	s.Catalog.movies = catalog.movies
	s.Catalog.showtimes = catalog.showtimes
	s.Catalog.order = catalog.order
	s.Catalog.mu.Unlock()

	s.Users.mu.Lock()
	s.Users.users = users.users
	s.Users.byUsername = users.byUsername
	s.Users.order = users.order
	s.Users.mu.Unlock()

	s.Ledger.mu.Lock()
	s.Ledger.bookings = ledger.bookings
	s.Ledger.order = ledger.order
	s.Ledger.mu.Unlock()

	return nil
}
