package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kailas-cloud/scentdex/internal/domain/search/facet"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
	"github.com/kailas-cloud/scentdex/internal/usecase/tool"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: searchPerfumesSchema(),
	}, s.handleSearchPerfumes)
}

// handleSearchPerfumes returns the envelope as structured content.
// Validation errors become tool errors carrying their detail; search failures
// are already folded into the envelope.
func (s *Server) handleSearchPerfumes(
	ctx context.Context, _ *mcp.CallToolRequest, in tool.Input,
) (*mcp.CallToolResult, tool.Envelope, error) {
	env, err := s.adapter.SearchPerfumes(ctx, in)
	if err != nil {
		return nil, tool.Envelope{}, err
	}
	return nil, env, nil
}

// searchPerfumesSchema declares the search_perfumes arguments.
func searchPerfumesSchema() *jsonschema.Schema {
	topK := request.ToolLimits
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Natural-language description of the desired scent, e.g. \"fresh citrus summer fragrance\"",
				MinLength:   ptr(1),
				MaxLength:   ptr(request.MaxQueryLength),
			},
			"gender": {
				Type:        "string",
				Description: "Target wearer",
				Enum:        enum(facet.Genders),
			},
			"brand": {
				Type:        "string",
				Description: "Exact brand name, e.g. \"Creed\"",
			},
			"primary_season": {
				Type:        "string",
				Description: "Season the perfume is primarily worn in",
				Enum:        enum(facet.Seasons),
			},
			"olfactory_family": {
				Type:        "string",
				Description: "Olfactory family, e.g. \"Woody\" or \"Floral\"",
			},
			"min_rating": {
				Type:        "number",
				Description: "Minimum average rating",
				Minimum:     ptr(request.MinRating),
				Maximum:     ptr(request.MaxRating),
			},
			"price_perception": {
				Type:        "string",
				Description: "Perceived price tier",
				Enum:        enum(facet.PriceTiers),
			},
			"topK": {
				Type:        "integer",
				Description: "Number of perfumes to return",
				Minimum:     ptr(float64(topK.MinTopK)),
				Maximum:     ptr(float64(topK.MaxTopK)),
				Default:     mustJSON(topK.DefaultTopK),
			},
		},
		Required: []string{"query"},
	}
}

func enum[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
