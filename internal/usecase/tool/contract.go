package tool

import (
	"context"

	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
)

// Searcher runs the shared embed-search-map pipeline.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) ([]perfume.Perfume, error)
}
