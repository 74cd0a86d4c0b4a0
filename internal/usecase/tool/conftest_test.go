package tool

import (
	"context"
	"testing"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
)

// mockSearcher implements Searcher for tests.
type mockSearcher struct {
	perfumes []perfume.Perfume
	err      error
	called   bool
	lastReq  *request.Request
}

func (m *mockSearcher) Search(_ context.Context, req *request.Request) ([]perfume.Perfume, error) {
	m.called = true
	m.lastReq = req
	return m.perfumes, m.err
}

// stubEmbedder implements usecase/search.Embedder.
type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	s.calls++
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}}, nil
}

// stubRepo implements usecase/search.Repository, returning at most topK matches.
type stubRepo struct {
	matches []perfume.Match
	calls   int
}

func (s *stubRepo) SearchKNN(_ context.Context, _ []float32, _ filter.Expression, topK int) ([]perfume.Match, error) {
	s.calls++
	if len(s.matches) > topK {
		return s.matches[:topK], nil
	}
	return s.matches, nil
}

func catalog(t *testing.T) []perfume.Match {
	t.Helper()
	names := []string{"Neroli Portofino", "Light Blue", "Acqua di Gio", "Cologne Indelebile", "Virgin Island Water"}
	scores := []float64{0.8734, 0.85, 0.83, 0.8, 0.78}
	out := make([]perfume.Match, len(names))
	for i, n := range names {
		out[i] = perfume.Match{
			ID:    n,
			Score: scores[i],
			Metadata: map[string]any{
				"name":             n,
				"brand":            "House",
				"gender":           "unisex",
				"rating_score":     4.2,
				"olfactory_family": "Citrus Aromatic",
				"notes":            "bergamot, lemon, neroli",
				"image_url":        "https://img.example/" + n + ".jpg",
			},
		}
	}
	return out
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
