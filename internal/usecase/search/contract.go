package search

import (
	"context"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
)

// Repository defines the vector index contract for perfume search.
type Repository interface {
	SearchKNN(
		ctx context.Context,
		vector []float32, filters filter.Expression, topK int,
	) ([]perfume.Match, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
