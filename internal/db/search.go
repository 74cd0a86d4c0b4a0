package db

import (
	"fmt"

	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
)

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	// Filters is a conjunctive pre-filter. The empty expression means "no filter".
	Filters         filter.Expression
	Vector          []float32
	K               int
	ReturnFields    []string
	IncludeMetadata bool
}

// Validate checks the fields every driver requires.
func (q *KNNQuery) Validate() error {
	if q.IndexName == "" {
		return fmt.Errorf("index name is required")
	}
	if len(q.Vector) == 0 {
		return fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return fmt.Errorf("k must be positive")
	}
	return nil
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single hit: point key, similarity (higher is closer) and stored metadata.
type SearchEntry struct {
	Key      string
	Score    float64
	Metadata map[string]any
}
