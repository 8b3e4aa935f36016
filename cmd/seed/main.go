// Command seed populates a snapshot with the demo catalog: four movies with
// three showtimes a day over the next three days, an admin and a demo user.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/marquee-cinema/marquee/internal/domain"
	"github.com/marquee-cinema/marquee/internal/gateway"
	"github.com/marquee-cinema/marquee/internal/store"
	"github.com/shopspring/decimal"
)

func main() {
	snapshotFile := flag.String("snapshot-file", "marquee_data.json", "Snapshot file to write")
	totalSeats := flag.Int("total-seats", 50, "Seats per showtime")
	flag.Parse()

	st := store.New(gateway.NewFileGateway(*snapshotFile))

	seedUsers(st)
	seedCatalog(st, *totalSeats)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := st.Persist(ctx); err != nil {
		log.Fatalf("persist seed data: %v", err)
	}

	log.Printf("seed data written to %s", *snapshotFile)
}

func seedUsers(st *store.Store) {
	users := []struct {
		username string
		email    string
		password string
		role     domain.Role
	}{
		{"admin", "admin@cinema.com", "Admin123!pass", domain.RoleAdmin},
		{"sudip", "sudip@email.com", "Sudip123!pass", domain.RoleUser},
	}

	for _, u := range users {
		if _, err := st.Users.Register(u.username, u.email, u.password, u.role); err != nil {
			log.Fatalf("register %s: %v", u.username, err)
		}
		log.Printf("user created: %s / %s", u.username, u.password)
	}
}

func seedCatalog(st *store.Store, totalSeats int) {
	movies := []store.MovieParams{
		{
			Title:       "Avengers: Endgame",
			Genre:       "Action/Adventure",
			Duration:    181,
			Rating:      "PG-13",
			Description: "The Avengers assemble once more to reverse Thanos' actions.",
			Price:       decimal.RequireFromString("15.00"),
		},
		{
			Title:       "The Dark Knight",
			Genre:       "Action/Crime",
			Duration:    152,
			Rating:      "PG-13",
			Description: "Batman faces the Joker in this epic crime thriller.",
			Price:       decimal.RequireFromString("12.50"),
		},
		{
			Title:       "Inception",
			Genre:       "Sci-Fi/Thriller",
			Duration:    148,
			Rating:      "PG-13",
			Description: "A thief who steals secrets through dream-sharing technology.",
			Price:       decimal.RequireFromString("13.00"),
		},
		{
			Title:       "Parasite",
			Genre:       "Thriller/Drama",
			Duration:    132,
			Rating:      "R",
			Description: "A poor family schemes to become employed by a wealthy family.",
			Price:       decimal.RequireFromString("11.50"),
		},
	}

	theaters := []string{"Theater A", "Theater B", "Theater C"}
	times := []string{"10:00", "13:30", "16:00"}

	for _, params := range movies {
		movie, err := st.Catalog.AddMovie(params)
		if err != nil {
			log.Fatalf("add movie %s: %v", params.Title, err)
		}

		for day := range 3 {
			date := time.Now().AddDate(0, 0, day).Format("2006-01-02")

			for i, showTime := range times {
				_, err := st.Catalog.AddShowtime(movie.ID, date, showTime, theaters[i%len(theaters)], totalSeats)
				if err != nil {
					log.Fatalf("add showtime for %s: %v", params.Title, err)
				}
			}
		}

		log.Printf("movie created: %s (%d showtimes)", movie.Title, len(movie.Showtimes))
	}
}
