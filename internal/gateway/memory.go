package gateway

import (
	"context"
	"sync"

	"github.com/marquee-cinema/marquee/internal/snapshot"
)

// MemoryGateway keeps the latest snapshot in memory, in encoded form so that
// loads exercise the same schema validation as the durable gateways. Used in
// tests and wherever durability is explicitly not wanted.
type MemoryGateway struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load(_ context.Context) (*snapshot.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.data == nil {
		return nil, snapshot.ErrNoSnapshot
	}

	return snapshot.Decode(g.data)
}

func (g *MemoryGateway) Save(_ context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.data = data

	return nil
}
