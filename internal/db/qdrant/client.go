// Package qdrant implements db.VectorIndex on a managed Qdrant cluster.
package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/kailas-cloud/scentdex/internal/db"
)

// Compile-time check: Store implements db.VectorIndex.
var _ db.VectorIndex = (*Store)(nil)

const defaultGRPCPort = 6334

// Config holds Qdrant connection parameters.
type Config struct {
	// URL is the cluster address, e.g. "https://xyz.cloud.qdrant.io:6334".
	// A bare host is treated as https.
	URL    string
	APIKey string
}

// pointsQuerier is the consumer interface over *qdrant.Client (ISP).
type pointsQuerier interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	Close() error
}

// Store implements db.VectorIndex via the Qdrant gRPC client.
type Store struct {
	api pointsQuerier
}

// NewStore connects to Qdrant.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}

	host, port, useTLS, err := parseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Store{api: client}, nil
}

// NewStoreForTest creates a Store over the provided client (test-only).
func NewStoreForTest(api pointsQuerier) *Store {
	return &Store{api: api}
}

// parseURL splits a Qdrant address into gRPC host, port and TLS flag.
func parseURL(raw string) (host string, port int, useTLS bool, err error) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", 0, false, fmt.Errorf("failed to parse qdrant url: %w", err)
	}
	if u.Hostname() == "" {
		return "", 0, false, fmt.Errorf("qdrant url has no host: %q", raw)
	}

	port = defaultGRPCPort
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid port: %w", err)
		}
	}

	return u.Hostname(), port, u.Scheme == "https", nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.api.HealthCheck(ctx); err != nil {
		return &db.Error{Op: db.OpHealth, Err: err}
	}
	return nil
}

// Close shuts down the gRPC connection.
func (s *Store) Close() {
	_ = s.api.Close()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}
