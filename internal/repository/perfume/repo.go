package perfume

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/scentdex/internal/db"
	"github.com/kailas-cloud/scentdex/internal/domain"
	domperf "github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scentdex/internal/metrics"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config names the index a Repo searches.
type Config struct {
	IndexName string
	// KeyPrefix is stripped from hit keys (redis driver stores "perfume:<id>").
	KeyPrefix string
	// Driver labels metrics.
	Driver string
}

// Repo implements usecase/search.Repository over a db.VectorIndex.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
	driver    string
}

// New creates a perfume repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, indexName: cfg.IndexName, keyPrefix: cfg.KeyPrefix, driver: cfg.Driver}
}

// IndexName returns the configured index.
func (r *Repo) IndexName() string { return r.indexName }

// SearchKNN returns the topK nearest perfumes that satisfy filters, best first.
func (r *Repo) SearchKNN(
	ctx context.Context, vector []float32, filters filter.Expression, topK int,
) ([]domperf.Match, error) {
	if r.indexName == "" {
		return nil, domain.ErrIndexNotConfigured
	}

	q := &db.KNNQuery{
		IndexName:       r.indexName,
		Filters:         filters,
		Vector:          vector,
		K:               topK,
		ReturnFields:    domain.MetadataFields,
		IncludeMetadata: true,
	}

	start := time.Now()
	sr, err := r.store.SearchKNN(ctx, q)
	metrics.VectorSearchDuration.WithLabelValues(r.driver).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.VectorSearchRequestsTotal.WithLabelValues(r.driver, "error").Inc()
		return nil, fmt.Errorf("%w: search knn %s: %w", domain.ErrVectorSearchError, r.indexName, err)
	}

	metrics.VectorSearchRequestsTotal.WithLabelValues(r.driver, "success").Inc()
	return toMatches(sr, r.keyPrefix), nil
}

// toMatches converts db.SearchResult into []domperf.Match.
// A nil result or missing entries yields an empty slice.
func toMatches(sr *db.SearchResult, prefix string) []domperf.Match {
	if sr == nil || len(sr.Entries) == 0 {
		return []domperf.Match{}
	}

	matches := make([]domperf.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		matches = append(matches, domperf.Match{
			ID:       strings.TrimPrefix(entry.Key, prefix),
			Score:    entry.Score,
			Metadata: entry.Metadata,
		})
	}
	return matches
}
