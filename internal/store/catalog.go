package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/shopspring/decimal"
)

// Catalog is the registry of movies and their showtimes and the exclusive
// owner of both. Structural edits take the write lock; lookups and in-flight
// bookings share the read lock, so removing a movie can never interleave with
// a booking being created against one of its showtimes.
type Catalog struct {
	mu        sync.RWMutex
	movies    map[string]*domain.Movie
	showtimes map[string]*domain.Showtime
	order     []string
}

func NewCatalog() *Catalog {
	return &Catalog{
		movies:    make(map[string]*domain.Movie),
		showtimes: make(map[string]*domain.Showtime),
	}
}

type MovieParams struct {
	Title       string
	Genre       string
	Duration    int
	Rating      string
	Description string
	Price       decimal.Decimal
}

func (p MovieParams) validate() error {
	switch {
	case p.Title == "":
		return errors.New("movie title must not be empty")
	case p.Duration <= 0:
		return errors.New("movie duration must be positive")
	case !p.Price.IsPositive():
		return errors.New("movie price must be positive")
	}

	return nil
}

func (c *Catalog) AddMovie(params MovieParams) (*domain.Movie, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Genre:       params.Genre,
		Duration:    params.Duration,
		Rating:      params.Rating,
		Description: params.Description,
		Price:       params.Price,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.movies[movie.ID] = movie
	c.order = append(c.order, movie.ID)

	return cloneMovieLocked(movie), nil
}

func (c *Catalog) AddShowtime(movieID, date, showTime, theater string, totalSeats int) (*domain.Showtime, error) {
	if totalSeats <= 0 {
		return nil, errors.New("total seats must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	movie, ok := c.movies[movieID]
	if !ok {
		return nil, fmt.Errorf("%w: movie %q", domain.ErrNotFound, movieID)
	}

	showtime := &domain.Showtime{
		ID:      uuid.NewString(),
		MovieID: movieID,
		Date:    date,
		Time:    showTime,
		Theater: theater,
		Seats:   domain.NewSeatMap(totalSeats),
	}

	movie.Showtimes = append(movie.Showtimes, showtime)
	c.showtimes[showtime.ID] = showtime

	return showtime, nil
}

// cloneMovieLocked copies a movie record for use outside the catalog lock.
// The Showtimes slice is re-headered while AddShowtime and removeShowtimeLocked
// resplice the original, so callers may range over it freely; the showtime
// records themselves are fixed at creation and their seat maps carry their
// own lock, so sharing those pointers is safe.
func cloneMovieLocked(movie *domain.Movie) *domain.Movie {
	clone := *movie
	clone.Showtimes = make([]*domain.Showtime, len(movie.Showtimes))
	copy(clone.Showtimes, movie.Showtimes)

	return &clone
}

// Movies returns the catalog in insertion order.
func (c *Catalog) Movies() []*domain.Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()

	movies := make([]*domain.Movie, 0, len(c.order))
	for _, id := range c.order {
		movies = append(movies, cloneMovieLocked(c.movies[id]))
	}

	return movies
}

func (c *Catalog) MovieByID(id string) (*domain.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	movie, ok := c.movies[id]
	if !ok {
		return nil, fmt.Errorf("%w: movie %q", domain.ErrNotFound, id)
	}

	return cloneMovieLocked(movie), nil
}

// FindShowtime returns a showtime together with its owning movie.
func (c *Catalog) FindShowtime(id string) (*domain.Showtime, *domain.Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.findShowtimeLocked(id)
}

func (c *Catalog) findShowtimeLocked(id string) (*domain.Showtime, *domain.Movie, error) {
	showtime, ok := c.showtimes[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: showtime %q", domain.ErrNotFound, id)
	}

	return showtime, cloneMovieLocked(c.movies[showtime.MovieID]), nil
}

func (c *Catalog) removeMovieLocked(movie *domain.Movie) {
	for _, showtime := range movie.Showtimes {
		delete(c.showtimes, showtime.ID)
	}
	delete(c.movies, movie.ID)

	for i, id := range c.order {
		if id == movie.ID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Catalog) removeShowtimeLocked(showtime *domain.Showtime) {
	movie := c.movies[showtime.MovieID]
	for i, st := range movie.Showtimes {
		if st.ID == showtime.ID {
			movie.Showtimes = append(movie.Showtimes[:i], movie.Showtimes[i+1:]...)
			break
		}
	}
	delete(c.showtimes, showtime.ID)
}
