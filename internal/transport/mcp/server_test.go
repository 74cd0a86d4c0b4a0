package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/scentdex/internal/usecase/tool"
)

type fakeAdapter struct {
	env     tool.Envelope
	err     error
	lastIn  tool.Input
	invoked int
}

func (f *fakeAdapter) SearchPerfumes(_ context.Context, in tool.Input) (tool.Envelope, error) {
	f.invoked++
	f.lastIn = in
	if f.err != nil {
		return tool.Envelope{}, f.err
	}
	// Run the real validation so schema-level and domain-level checks agree.
	if _, err := in.Request(); err != nil {
		return tool.Envelope{}, err
	}
	return f.env, nil
}

func connect(t *testing.T, a ToolAdapter) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	srv, err := NewServer(&Config{Name: "scentdex-test", Version: "test"}, a)
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := srv.mcp.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	return cs
}

func TestNewServer_RequiresAdapter(t *testing.T) {
	_, err := NewServer(&Config{}, nil)
	require.Error(t, err)
}

func TestNewServer_NilConfig(t *testing.T) {
	srv, err := NewServer(nil, &fakeAdapter{})
	require.NoError(t, err)
	require.NotNil(t, srv.Handler())
}

func TestListTools(t *testing.T) {
	cs := connect(t, &fakeAdapter{})

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)

	tl := res.Tools[0]
	assert.Equal(t, tool.Name, tl.Name)
	assert.Equal(t, tool.Description, tl.Description)

	raw, err := json.Marshal(tl.InputSchema)
	require.NoError(t, err)
	var schema struct {
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(raw, &schema))
	assert.Equal(t, []string{"query"}, schema.Required)
	for _, p := range []string{
		"query", "gender", "brand", "primary_season",
		"olfactory_family", "min_rating", "price_perception", "topK",
	} {
		assert.Contains(t, schema.Properties, p)
	}
}

func TestCallTool_Success(t *testing.T) {
	a := &fakeAdapter{env: tool.Envelope{
		Success: true,
		Message: "Found 1 perfumes matching your search.",
		Perfumes: []tool.PerfumeView{{
			ID: "p1", Name: "Neroli Portofino", Brand: "Tom Ford", MatchScore: 87,
		}},
	}}
	cs := connect(t, a)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name: tool.Name,
		Arguments: map[string]any{
			"query":      "fresh citrus summer fragrance",
			"gender":     "unisex",
			"min_rating": 4.0,
			"topK":       3,
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	assert.Equal(t, "fresh citrus summer fragrance", a.lastIn.Query)
	assert.Equal(t, "unisex", a.lastIn.Gender)
	require.NotNil(t, a.lastIn.TopK)
	assert.Equal(t, 3, *a.lastIn.TopK)
	require.NotNil(t, a.lastIn.MinRating)
	assert.InDelta(t, 4.0, *a.lastIn.MinRating, 1e-9)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var env struct {
		Success  bool   `json:"success"`
		Message  string `json:"message"`
		Perfumes []struct {
			Name       string `json:"name"`
			MatchScore int    `json:"matchScore"`
		} `json:"perfumes"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.True(t, env.Success)
	require.Len(t, env.Perfumes, 1)
	assert.Equal(t, "Neroli Portofino", env.Perfumes[0].Name)
	assert.Equal(t, 87, env.Perfumes[0].MatchScore)
}

func TestCallTool_FailureEnvelopeIsNotToolError(t *testing.T) {
	a := &fakeAdapter{env: tool.Failure("")}
	cs := connect(t, a)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tool.Name,
		Arguments: map[string]any{"query": "oud"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestCallTool_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing query", map[string]any{}},
		{"topK above max", map[string]any{"query": "oud", "topK": 11}},
		{"topK zero", map[string]any{"query": "oud", "topK": 0}},
		{"bad gender", map[string]any{"query": "oud", "gender": "men"}},
		{"rating out of range", map[string]any{"query": "oud", "min_rating": 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, &fakeAdapter{})

			res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      tool.Name,
				Arguments: tt.args,
			})
			// Argument validation surfaces either as a protocol error or as a tool error.
			if err == nil {
				require.True(t, res.IsError)
			}
		})
	}
}

func TestCallTool_AdapterError(t *testing.T) {
	a := &fakeAdapter{err: errors.New("boom")}
	cs := connect(t, a)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tool.Name,
		Arguments: map[string]any{"query": "oud"},
	})
	if err == nil {
		require.True(t, res.IsError)
	}
	assert.Equal(t, 1, a.invoked)
}
