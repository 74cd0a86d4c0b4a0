package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

// Register registers every scentdex collector with the default registry.
// Safe to call more than once; must be called from main before serving.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			EmbeddingRequestsTotal,
			EmbeddingRequestDuration,
			EmbeddingTokensTotal,
			EmbeddingErrorsTotal,
			VectorSearchRequestsTotal,
			VectorSearchDuration,
			MalformedMatchesTotal,
			ToolCallsTotal,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
