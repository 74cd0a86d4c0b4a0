package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/kailas-cloud/scentdex/internal/db"
	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
)

// SearchKNN runs a nearest-neighbor query against a collection.
// The collection's distance metric decides the score; cosine yields similarity directly.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	limit := uint64(q.K)
	points, err := s.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.IndexName,
		Query:          qdrant.NewQuery(q.Vector...),
		Limit:          &limit,
		Filter:         buildFilter(q.Filters),
		WithPayload:    payloadSelector(q),
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("%s: %w", q.IndexName, db.ErrIndexNotFound)}
		}
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(points))
	for _, p := range points {
		if p == nil {
			continue
		}
		entries = append(entries, db.SearchEntry{
			Key:      pointID(p.GetId()),
			Score:    float64(p.GetScore()),
			Metadata: payloadToMap(p.GetPayload()),
		})
	}

	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}

func payloadSelector(q *db.KNNQuery) *qdrant.WithPayloadSelector {
	if !q.IncludeMetadata {
		return qdrant.NewWithPayload(false)
	}
	if len(q.ReturnFields) > 0 {
		return qdrant.NewWithPayloadInclude(q.ReturnFields...)
	}
	return qdrant.NewWithPayload(true)
}

// buildFilter translates filter.Expression into a Qdrant filter.
// The empty expression yields nil so the query runs unfiltered.
func buildFilter(expr filter.Expression) *qdrant.Filter {
	if expr.IsEmpty() {
		return nil
	}

	must := make([]*qdrant.Condition, 0, len(expr.Conditions()))
	for _, cond := range expr.Conditions() {
		switch {
		case cond.IsEq():
			must = append(must, qdrant.NewMatch(cond.Key(), cond.Value()))
		case cond.IsGte():
			gte := cond.Bound()
			must = append(must, qdrant.NewRange(cond.Key(), &qdrant.Range{Gte: &gte}))
		}
	}
	return &qdrant.Filter{Must: must}
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	switch v := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10)
	case *qdrant.PointId_Uuid:
		return v.Uuid
	}
	return ""
}

func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	if len(payload) == 0 {
		return nil
	}
	m := make(map[string]any, len(payload))
	for k, v := range payload {
		m[k] = extractValue(v)
	}
	return m
}

// extractValue converts a Qdrant payload value into its Go equivalent.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}

	switch val := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_StructValue:
		return payloadToMap(val.StructValue.GetFields())
	case *qdrant.Value_ListValue:
		items := val.ListValue.GetValues()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, extractValue(item))
		}
		return out
	default:
		return nil
	}
}
