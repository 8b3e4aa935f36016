package gateway

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/marquee-cinema/marquee/internal/snapshot"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *snapshot.Snapshot {
	total := 50

	return &snapshot.Snapshot{
		Movies: []snapshot.Movie{
			{
				MovieID:  "m1",
				Title:    "Inception",
				Genre:    "Sci-Fi/Thriller",
				Duration: 148,
				Rating:   "PG-13",
				Price:    snapshot.NewAmount(decimal.RequireFromString("13.00")),
				Showtimes: []snapshot.Showtime{
					{
						ShowtimeID:  "s1",
						MovieID:     "m1",
						Date:        "2026-09-01",
						Time:        "19:30",
						Theater:     "Theater A",
						TotalSeats:  &total,
						BookedSeats: []int{1, 2},
					},
				},
			},
		},
		Users: []snapshot.User{
			{UserID: "u1", Username: "sudip", Email: "sudip@email.com", Bookings: []string{"b1"}},
		},
		Bookings: []snapshot.Booking{
			{
				BookingID:   "b1",
				UserID:      "u1",
				MovieTitle:  "Inception",
				ShowtimeID:  "s1",
				SeatNumbers: []int{1, 2},
				TotalAmount: snapshot.NewAmount(decimal.RequireFromString("26.00")),
				BookingDate: "2026-08-29 12:00:00",
				Status:      "Confirmed",
			},
		},
	}
}

func TestFileGatewayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	gw := NewFileGateway(path)

	want := testSnapshot()
	require.NoError(t, gw.Save(context.Background(), want))

	got, err := gw.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestFileGatewayLoadMissingFile(t *testing.T) {
	gw := NewFileGateway(filepath.Join(t.TempDir(), "nope.json"))

	_, err := gw.Load(context.Background())
	require.ErrorIs(t, err, snapshot.ErrNoSnapshot)
}

func TestFileGatewaySaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	gw := NewFileGateway(path)

	require.NoError(t, gw.Save(context.Background(), testSnapshot()))

	second := testSnapshot()
	second.Bookings = nil
	second.Users[0].Bookings = nil
	second.Movies[0].Showtimes[0].BookedSeats = nil
	require.NoError(t, gw.Save(context.Background(), second))

	// No temp files may be left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, err := gw.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got.Bookings)
}

func TestFileGatewayRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"movies": [{}]}`), 0o644))

	_, err := NewFileGateway(path).Load(context.Background())

	var schemaErr *snapshot.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestMemoryGatewayRoundTrip(t *testing.T) {
	gw := NewMemoryGateway()

	_, err := gw.Load(context.Background())
	require.ErrorIs(t, err, snapshot.ErrNoSnapshot)

	want := testSnapshot()
	require.NoError(t, gw.Save(context.Background(), want))

	got, err := gw.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
