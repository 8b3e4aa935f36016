package app

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
)

// seatsPerRow fixes the row/column presentation of a flat seat number:
// seat n sits in row 'A'+(n-1)/10, column (n-1)%10+1. The core itself only
// knows flat numbers.
const seatsPerRow = 10

func (app *application) ListShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := app.store.Catalog.MovieByID(chi.URLParam(r, "movieID"))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowtimeListResponse{
		MovieId:   movie.ID,
		Showtimes: make([]api.ShowtimeResponse, 0, len(movie.Showtimes)),
	}
	for _, showtime := range movie.Showtimes {
		resp.Showtimes = append(resp.Showtimes, toShowtimeResponse(showtime))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ShowtimeRequest

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

	showtime, err := app.store.Catalog.AddShowtime(
		chi.URLParam(r, "movieID"), input.Date, input.Time, input.Theater, input.TotalSeats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.CreateShowtimeResponse{
		ShowtimeResponse: toShowtimeResponse(showtime),
		Persistence:      api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteShowtimeHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.RemoveShowtime(chi.URLParam(r, "showtimeID"))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.DeleteResponse{
		Deleted:     true,
		Persistence: api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request) {
	showtime, movie, err := app.store.Catalog.FindShowtime(chi.URLParam(r, "showtimeID"))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.SeatMapResponse{
		ShowtimeId: showtime.ID,
		MovieTitle: movie.Title,
		Theater:    showtime.Theater,
		Date:       showtime.Date,
		Time:       showtime.Time,
		TotalSeats: showtime.Seats.TotalSeats(),
		Seats:      toSeatRows(showtime),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toShowtimeResponse(showtime *domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:             showtime.ID,
		MovieId:        showtime.MovieID,
		Date:           showtime.Date,
		Time:           showtime.Time,
		Theater:        showtime.Theater,
		TotalSeats:     showtime.Seats.TotalSeats(),
		AvailableSeats: len(showtime.Seats.Available()),
	}
}

func toSeatRows(showtime *domain.Showtime) [][]api.Seat {
	total := showtime.Seats.TotalSeats()

	available := make(map[int]bool, total)
	for _, seat := range showtime.Seats.Available() {
		available[seat] = true
	}

	var rows [][]api.Seat
	var row []api.Seat

	for n := 1; n <= total; n++ {
		row = append(row, api.Seat{
			Number:    n,
			Row:       seatRowLabel(n),
			Col:       (n-1)%seatsPerRow + 1,
			Available: available[n],
		})

		if n%seatsPerRow == 0 || n == total {
			rows = append(rows, row)
			row = nil
		}
	}

	return rows
}

func seatRowLabel(n int) string {
	return fmt.Sprintf("%c", 'A'+rune((n-1)/seatsPerRow))
}
