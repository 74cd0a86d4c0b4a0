package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
	"github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
)

// Service runs the perfume search pipeline shared by the tool server and the CLI:
// embed the query, search the index with the translated filters, map the hits.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, embed Embedder) *Service {
	return &Service{repo: repo, embed: embed, logger: zap.NewNop()}
}

// WithLogger sets the logger used when the context carries none (stdio, CLI).
func (s *Service) WithLogger(l *zap.Logger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

// Search executes one embed-then-search round trip. The two calls run strictly in sequence.
// An empty result is not an error.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]perfume.Perfume, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	matches, err := s.repo.SearchKNN(ctx, embResult.Embedding, req.Filters(), req.TopK())
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	perfumes, skipped := perfume.MapMatches(matches)
	if skipped > 0 {
		metrics.MalformedMatchesTotal.Add(float64(skipped))
		logger.FromContextOr(ctx, s.logger).Warn("skipped malformed matches",
			zap.Int("skipped", skipped),
			zap.Int("returned", len(perfumes)),
		)
	}

	return perfumes, nil
}
