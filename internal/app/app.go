// Package app assembles the search pipeline from configuration.
// Both the server and the CLI use it as their composition root.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/config"
	"github.com/kailas-cloud/scentdex/internal/db"
	dbQdrant "github.com/kailas-cloud/scentdex/internal/db/qdrant"
	dbRedis "github.com/kailas-cloud/scentdex/internal/db/redis"
	perfumerepo "github.com/kailas-cloud/scentdex/internal/repository/perfume"
	openaiEmb "github.com/kailas-cloud/scentdex/internal/transport/openai"
	healthuc "github.com/kailas-cloud/scentdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/scentdex/internal/usecase/search"
	"github.com/kailas-cloud/scentdex/internal/usecase/tool"
)

// App holds the wired components. Clients are built once and reused across calls.
type App struct {
	Index    db.VectorIndex
	Embedder *openaiEmb.Embedder
	Repo     *perfumerepo.Repo
	Search   *searchuc.Service
	Tool     *tool.Adapter
	Health   *healthuc.Service

	readiness time.Duration
}

// New opens the vector index and builds the pipeline on top of it.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	index, err := OpenIndex(cfg.VectorIndex)
	if err != nil {
		return nil, err
	}

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	repo := perfumerepo.New(index, perfumerepo.Config{
		IndexName: cfg.VectorIndex.IndexName,
		KeyPrefix: cfg.VectorIndex.KeyPrefix,
		Driver:    cfg.VectorIndex.Driver,
	})
	search := searchuc.New(repo, embedder).WithLogger(logger)

	return &App{
		Index:     index,
		Embedder:  embedder,
		Repo:      repo,
		Search:    search,
		Tool:      tool.NewAdapter(search, logger),
		Health:    healthuc.New(index, embedder),
		readiness: time.Duration(cfg.VectorIndex.ReadinessTimeout) * time.Second,
	}, nil
}

// OpenIndex creates the vector index client for the configured driver.
func OpenIndex(cfg config.VectorIndexConfig) (db.VectorIndex, error) {
	switch db.Driver(cfg.Driver) {
	case db.DriverQdrant:
		s, err := dbQdrant.NewStore(dbQdrant.Config{URL: cfg.URL, APIKey: cfg.APIKey})
		if err != nil {
			return nil, fmt.Errorf("open qdrant: %w", err)
		}
		return s, nil
	case db.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
			TLS:      cfg.TLS,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown vector index driver %q", cfg.Driver)
	}
}

// WaitForReady blocks until the vector index answers or the configured timeout elapses.
func (a *App) WaitForReady(ctx context.Context) error {
	return a.Index.WaitForReady(ctx, a.readiness)
}

// Close releases the vector index client.
func (a *App) Close() {
	a.Index.Close()
}
