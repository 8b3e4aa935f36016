package store

import (
	"sync"
	"testing"

	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	store    *Store
	user     *domain.User
	other    *domain.User
	admin    *domain.User
	showtime *domain.Showtime
}

func (s *LedgerTestSuite) SetupTest() {
	s.store = New(gateway.NewMemoryGateway())

	var err error
	s.user, err = s.store.Users.Register("sudip", "sudip@email.com", "Sudip123!pass", domain.RoleUser)
	s.Require().NoError(err)
	s.other, err = s.store.Users.Register("mallory", "mallory@email.com", "Mallory1!pass", domain.RoleUser)
	s.Require().NoError(err)
	s.admin, err = s.store.Users.Register("admin", "admin@cinema.com", "Admin123!pass", domain.RoleAdmin)
	s.Require().NoError(err)

	movie, err := s.store.Catalog.AddMovie(MovieParams{
		Title:    "The Dark Knight",
		Genre:    "Action/Crime",
		Duration: 152,
		Rating:   "PG-13",
		Price:    decimal.RequireFromString("12.50"),
	})
	s.Require().NoError(err)

	s.showtime, err = s.store.Catalog.AddShowtime(movie.ID, "2026-09-01", "19:30", "Theater A", 50)
	s.Require().NoError(err)
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) TestCreateBooking() {
	booking, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{1, 2, 3})
	s.Require().NoError(err)

	s.Equal(s.user.ID, booking.UserID)
	s.Equal("The Dark Knight", booking.MovieTitle)
	s.Equal([]int{1, 2, 3}, booking.Seats)
	s.Equal("37.50", booking.TotalAmount.StringFixed(2))
	s.Equal(domain.BookingConfirmed, booking.Status)

	available := s.showtime.Seats.Available()
	s.Len(available, 47)
	for _, seat := range available {
		s.NotContains([]int{1, 2, 3}, seat)
	}

	s.Contains(s.user.Bookings, booking.ID)
}

func (s *LedgerTestSuite) TestCreateBookingOverlapFailsWithoutPartialAllocation() {
	_, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{1, 2, 3})
	s.Require().NoError(err)

	before := s.showtime.Seats.Available()

	_, err = s.store.Ledger.CreateBooking(s.other.ID, s.showtime.ID, []int{2, 3, 4})
	s.Require().ErrorIs(err, domain.ErrSeatUnavailable)

	s.Equal(before, s.showtime.Seats.Available())
	s.Empty(s.store.Ledger.BookingsForUser(s.other.ID))
	s.Empty(s.other.Bookings)
}

func (s *LedgerTestSuite) TestCreateBookingUnknownShowtime() {
	_, err := s.store.Ledger.CreateBooking(s.user.ID, "missing", []int{1})
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *LedgerTestSuite) TestCreateBookingUnknownUser() {
	_, err := s.store.Ledger.CreateBooking("missing", s.showtime.ID, []int{1})
	s.Require().ErrorIs(err, domain.ErrNotFound)

	s.Len(s.showtime.Seats.Available(), 50)
}

func (s *LedgerTestSuite) TestCancelBooking() {
	booking, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{1, 2, 3})
	s.Require().NoError(err)

	sess := domain.Session{UserID: s.user.ID, Role: domain.RoleUser}

	cancelled, err := s.store.Ledger.CancelBooking(sess, booking.ID)
	s.Require().NoError(err)
	s.Equal(domain.BookingCancelled, cancelled.Status)

	available := s.showtime.Seats.Available()
	s.Len(available, 50)
	s.Contains(available, 1)
	s.Contains(available, 2)
	s.Contains(available, 3)

	// The record stays for history.
	kept, err := s.store.Ledger.BookingByID(booking.ID)
	s.Require().NoError(err)
	s.Equal(domain.BookingCancelled, kept.Status)
}

func (s *LedgerTestSuite) TestCancelBookingTwiceIsConflict() {
	booking, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{5})
	s.Require().NoError(err)

	sess := domain.Session{UserID: s.user.ID, Role: domain.RoleUser}

	_, err = s.store.Ledger.CancelBooking(sess, booking.ID)
	s.Require().NoError(err)

	before := s.showtime.Seats.Available()

	_, err = s.store.Ledger.CancelBooking(sess, booking.ID)
	s.Require().ErrorIs(err, domain.ErrConflict)

	// The second cancel must not touch the seat map again.
	s.Equal(before, s.showtime.Seats.Available())
}

func (s *LedgerTestSuite) TestCancelBookingPermissions() {
	booking, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{1, 2})
	s.Require().NoError(err)

	_, err = s.store.Ledger.CancelBooking(domain.Session{UserID: s.other.ID, Role: domain.RoleUser}, booking.ID)
	s.Require().ErrorIs(err, domain.ErrPermissionDenied)
	s.Len(s.showtime.Seats.Available(), 48)

	_, err = s.store.Ledger.CancelBooking(domain.Session{UserID: s.admin.ID, Role: domain.RoleAdmin}, booking.ID)
	s.Require().NoError(err)
	s.Len(s.showtime.Seats.Available(), 50)
}

func (s *LedgerTestSuite) TestCancelUnknownBooking() {
	sess := domain.Session{UserID: s.user.ID, Role: domain.RoleUser}

	_, err := s.store.Ledger.CancelBooking(sess, "missing")
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *LedgerTestSuite) TestBookingsForUser() {
	b1, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{1})
	s.Require().NoError(err)
	b2, err := s.store.Ledger.CreateBooking(s.user.ID, s.showtime.ID, []int{2})
	s.Require().NoError(err)
	_, err = s.store.Ledger.CreateBooking(s.other.ID, s.showtime.ID, []int{3})
	s.Require().NoError(err)

	bookings := s.store.Ledger.BookingsForUser(s.user.ID)
	s.Require().Len(bookings, 2)
	s.Equal(b1.ID, bookings[0].ID)
	s.Equal(b2.ID, bookings[1].ID)

	s.Len(s.store.Ledger.AllBookings(), 3)
}

func TestCreateBookingConcurrentOverlap(t *testing.T) {
	const attempts = 50

	st := New(gateway.NewMemoryGateway())

	user, err := st.Users.Register("sudip", "sudip@email.com", "Sudip123!pass", domain.RoleUser)
	require.NoError(t, err)

	movie, err := st.Catalog.AddMovie(MovieParams{
		Title: "Inception", Genre: "Sci-Fi", Duration: 148, Rating: "PG-13",
		Price: decimal.RequireFromString("13.00"),
	})
	require.NoError(t, err)

	showtime, err := st.Catalog.AddShowtime(movie.ID, "2026-09-01", "22:00", "Theater B", 50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = st.Ledger.CreateBooking(user.ID, showtime.ID, []int{10, 11})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}

	require.Equal(t, 1, succeeded, "exactly one overlapping booking may win")
	require.Len(t, st.Ledger.AllBookings(), 1)
	require.Len(t, showtime.Seats.Available(), 48)
}
