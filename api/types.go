// Package api holds the request and response shapes of the HTTP surface.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"request_id,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validation_errors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"system_info"`
}

// Persistence reports whether the snapshot save that follows a mutation
// succeeded. The mutation itself is already committed either way; on a failed
// save the caller may retry via the snapshot endpoint.
type Persistence struct {
	Persisted bool   `json:"persisted"`
	SaveError string `json:"save_error,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	UserResponse
	Persistence
}

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Genre       string  `json:"genre" validate:"required,max=100"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Rating      string  `json:"rating" validate:"required,max=10"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

type MovieResponse struct {
	Id          string             `json:"id"`
	Title       string             `json:"title"`
	Genre       string             `json:"genre"`
	Duration    int                `json:"duration"`
	Rating      string             `json:"rating"`
	Description string             `json:"description"`
	Price       string             `json:"price"`
	Showtimes   []ShowtimeResponse `json:"showtimes,omitempty"`
}

type CreateMovieResponse struct {
	MovieResponse
	Persistence
}

type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
}

type ShowtimeRequest struct {
	Date       string `json:"date" validate:"required,showdate"`
	Time       string `json:"time" validate:"required,showclock"`
	Theater    string `json:"theater" validate:"required,max=100"`
	TotalSeats int    `json:"total_seats" validate:"required,gt=0"`
}

type ShowtimeResponse struct {
	Id             string `json:"id"`
	MovieId        string `json:"movie_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Theater        string `json:"theater"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

type CreateShowtimeResponse struct {
	ShowtimeResponse
	Persistence
}

type ShowtimeListResponse struct {
	MovieId   string             `json:"movie_id"`
	Showtimes []ShowtimeResponse `json:"showtimes"`
}

type Seat struct {
	Number    int    `json:"number"`
	Row       string `json:"row"`
	Col       int    `json:"col"`
	Available bool   `json:"available"`
}

type SeatMapResponse struct {
	ShowtimeId string   `json:"showtime_id"`
	MovieTitle string   `json:"movie_title"`
	Theater    string   `json:"theater"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	TotalSeats int      `json:"total_seats"`
	Seats      [][]Seat `json:"seats"`
}

type BookingRequest struct {
	ShowtimeId  string `json:"showtime_id" validate:"required"`
	SeatNumbers []int  `json:"seat_numbers" validate:"required,min=1,max=10,dive,gt=0"`
}

type BookingResponse struct {
	Id          string    `json:"id"`
	UserId      string    `json:"user_id"`
	MovieTitle  string    `json:"movie_title"`
	ShowtimeId  string    `json:"showtime_id"`
	SeatNumbers []int     `json:"seat_numbers"`
	TotalAmount string    `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
}

type CreateBookingResponse struct {
	BookingResponse
	Persistence
}

type CancelBookingResponse struct {
	BookingResponse
	Persistence
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
	Persistence
}

type SnapshotResponse struct {
	Persistence
}
