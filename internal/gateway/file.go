// Package gateway provides snapshot.Gateway implementations. The core never
// knows which one it is talking to; transport, atomicity and retries live
// here.
package gateway

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marquee-cinema/marquee/internal/snapshot"
)

// FileGateway persists snapshots to a single JSON file. Saves go through a
// temp file and a rename so a crash mid-write never leaves a half-written
// snapshot behind.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Load(_ context.Context) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, snapshot.ErrNoSnapshot
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	return snapshot.Decode(data)
}

func (g *FileGateway) Save(_ context.Context, snap *snapshot.Snapshot) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(g.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("write temp snapshot: %w", err)
	}

	// Flush to disk before the rename so a crash cannot publish an empty file.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("sync temp snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), g.path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("replace snapshot file: %w", err)
	}

	return nil
}
