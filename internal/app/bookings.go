package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
)

func (app *application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input api.BookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sess := app.contextGetSession(r)

	booking, err := app.store.Ledger.CreateBooking(sess.UserID, input.ShowtimeId, input.SeatNumbers)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.metrics.addBookingCreated(r.Context(), len(booking.Seats))
	app.logger.Info("booking created",
		"booking_id", booking.ID, "showtime_id", booking.ShowtimeID, "seats", len(booking.Seats))

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.CreateBookingResponse{
		BookingResponse: toBookingResponse(booking),
		Persistence:     api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.contextGetSession(r)

	booking, err := app.store.Ledger.CancelBooking(sess, chi.URLParam(r, "bookingID"))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	app.metrics.addBookingCancelled(r.Context())
	app.logger.Info("booking cancelled", "booking_id", booking.ID, "by", sess.UserID)

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.CancelBookingResponse{
		BookingResponse: toBookingResponse(booking),
		Persistence:     api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	sess := app.contextGetSession(r)

	bookings := app.store.Ledger.BookingsForUser(sess.UserID)

	err := app.writeJSON(w, http.StatusOK, toBookingListResponse(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetAllBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings := app.store.Ledger.AllBookings()

	err := app.writeJSON(w, http.StatusOK, toBookingListResponse(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// SaveSnapshotHandler forces a snapshot save, the retry path after a
// mutation response reported persisted=false.
func (app *application) SaveSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.SnapshotResponse{
		Persistence: api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	status := http.StatusOK
	if !persisted {
		status = http.StatusBadGateway
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          booking.ID,
		UserId:      booking.UserID,
		MovieTitle:  booking.MovieTitle,
		ShowtimeId:  booking.ShowtimeID,
		SeatNumbers: booking.Seats,
		TotalAmount: booking.TotalAmount.StringFixed(2),
		CreatedAt:   booking.CreatedAt,
		Status:      string(booking.Status),
	}
}

func toBookingListResponse(bookings []domain.Booking) api.BookingListResponse {
	resp := api.BookingListResponse{Bookings: make([]api.BookingResponse, 0, len(bookings))}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, toBookingResponse(booking))
	}

	return resp
}
