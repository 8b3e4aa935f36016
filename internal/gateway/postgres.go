package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marquee-cinema/marquee/internal/snapshot"
)

// PostgresGateway appends each snapshot as a row in a snapshots table and
// loads the newest one. Keeping the history costs little and makes a bad
// save recoverable by hand.
type PostgresGateway struct {
	db *pgxpool.Pool
}

func NewPostgresGateway(db *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{db: db}
}

// EnsureSchema creates the snapshots table if it does not exist yet.
func (g *PostgresGateway) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id bigserial PRIMARY KEY,
			data jsonb NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`

	if _, err := g.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}

	return nil
}

func (g *PostgresGateway) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	query := `SELECT data FROM snapshots ORDER BY id DESC LIMIT 1`

	var data []byte
	err := g.db.QueryRow(ctx, query).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, snapshot.ErrNoSnapshot
		}

		return nil, fmt.Errorf("load snapshot row: %w", err)
	}

	return snapshot.Decode(data)
}

func (g *PostgresGateway) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	query := `INSERT INTO snapshots (data) VALUES ($1)`

	if _, err := g.db.Exec(ctx, query, data); err != nil {
		return fmt.Errorf("insert snapshot row: %w", err)
	}

	return nil
}
