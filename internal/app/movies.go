package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marquee-cinema/marquee/api"
	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/store"
	"github.com/shopspring/decimal"
)

func (app *application) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies := app.store.Catalog.Movies()

	resp := api.MovieListResponse{Movies: make([]api.MovieResponse, 0, len(movies))}
	for _, movie := range movies {
		resp.Movies = append(resp.Movies, toMovieResponse(movie, false))
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movie, err := app.store.Catalog.MovieByID(chi.URLParam(r, "movieID"))
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie, true), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input api.MovieRequest

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

	movie, err := app.store.Catalog.AddMovie(store.MovieParams{
		Title:       input.Title,
		Genre:       input.Genre,
		Duration:    input.Duration,
		Rating:      input.Rating,
		Description: input.Description,
		Price:       decimal.NewFromFloat(input.Price),
	})
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.metrics.addMovieCreated(r.Context())

	persisted, saveErr := app.persist(r.Context(), r)

	resp := api.CreateMovieResponse{
		MovieResponse: toMovieResponse(movie, false),
		Persistence:   api.Persistence{Persisted: persisted, SaveError: saveErr},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	err := app.store.RemoveMovie(chi.URLParam(r, "movieID"))
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

func toMovieResponse(movie *domain.Movie, withShowtimes bool) api.MovieResponse {
	resp := api.MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		Rating:      movie.Rating,
		Description: movie.Description,
		Price:       movie.Price.StringFixed(2),
	}

	if withShowtimes {
		for _, showtime := range movie.Showtimes {
			resp.Showtimes = append(resp.Showtimes, toShowtimeResponse(showtime))
		}
	}

	return resp
}
