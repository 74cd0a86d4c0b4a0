package chi

import (
	"context"
	"net/http"

	healthuc "github.com/kailas-cloud/scentdex/internal/usecase/health"
	"github.com/kailas-cloud/scentdex/internal/usecase/tool"
)

// mockTools implements ToolAdapter.
type mockTools struct {
	env    tool.Envelope
	err    error
	panics bool
	lastIn tool.Input
	calls  int
}

func (m *mockTools) SearchPerfumes(_ context.Context, in tool.Input) (tool.Envelope, error) {
	m.calls++
	m.lastIn = in
	if m.panics {
		panic("boom")
	}
	return m.env, m.err
}

// mockHealth implements HealthChecker.
type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func healthyReport() healthuc.Report {
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{
			healthuc.ComponentVectorIndex: healthuc.CheckOK,
			healthuc.ComponentEmbedding:   healthuc.CheckOK,
		},
	}
}

func newTestRouter(tools *mockTools, h *mockHealth, cfg RouterConfig) (*Server, http.Handler) {
	if h == nil {
		h = &mockHealth{report: healthyReport()}
	}
	s := NewServer(tools, h, nil)
	return s, NewRouter(s, cfg)
}
