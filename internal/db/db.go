package db

import (
	"context"
	"fmt"
	"time"
)

// VectorIndex is the facade over a managed nearest-neighbor index.
type VectorIndex interface {
	Pinger
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks index connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs filtered similarity queries.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// Driver names a VectorIndex implementation.
type Driver string

const (
	// DriverQdrant talks to a Qdrant cluster over gRPC.
	DriverQdrant Driver = "qdrant"
	// DriverRedis uses the Redis query engine (FT.SEARCH).
	DriverRedis Driver = "redis"
)

// IsValid checks if the driver is supported.
func (d Driver) IsValid() bool {
	return d == DriverQdrant || d == DriverRedis
}

// WaitForReady polls p.Ping until it succeeds or the timeout expires.
func WaitForReady(ctx context.Context, p Pinger, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for vector index: %w", ctx.Err())
		case <-ticker.C:
			if err := p.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
