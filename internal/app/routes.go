package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware("marquee-api", otelchi.WithChiRoutes(r)))
	r.Use(app.sessionManager.LoadAndSave)

	r.NotFound(app.notFoundResponse)

	r.Get("/health", app.GetHealthHandler)

	r.Post("/users", app.RegisterUserHandler)
	r.Post("/sessions", app.LoginHandler)
	r.Delete("/sessions", app.LogoutHandler)

	r.Get("/movies", app.ListMoviesHandler)
	r.Get("/movies/{movieID}", app.GetMovieHandler)
	r.Get("/movies/{movieID}/showtimes", app.ListShowtimesHandler)
	r.Get("/showtimes/{showtimeID}/seats", app.GetSeatMapHandler)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.Get("/users/me", app.GetCurrentUserHandler)

		r.Post("/bookings", app.CreateBookingHandler)
		r.Get("/bookings", app.GetUserBookingsHandler)
		r.Delete("/bookings/{bookingID}", app.CancelBookingHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAdmin)

			r.Post("/movies", app.CreateMovieHandler)
			r.Delete("/movies/{movieID}", app.DeleteMovieHandler)
			r.Post("/movies/{movieID}/showtimes", app.CreateShowtimeHandler)
			r.Delete("/showtimes/{showtimeID}", app.DeleteShowtimeHandler)

			r.Get("/admin/bookings", app.GetAllBookingsHandler)
			r.Post("/admin/snapshot", app.SaveSnapshotHandler)
		})
	})

	return r
}
