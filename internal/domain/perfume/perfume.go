// Package perfume maps raw vector index hits onto perfume records.
package perfume

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain"
)

// Match is a raw nearest-neighbor hit: identifier, similarity and the stored metadata bag.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

// Perfume is a mapped search result.
type Perfume struct {
	ID              string
	Name            string
	Brand           string
	Gender          string
	Rating          float64
	OlfactoryFamily string
	Notes           string
	ImageURL        string
	Score           float64
}

// FromMatch extracts typed fields from the metadata bag.
// A match without metadata or without a string name is rejected with domain.ErrMalformedMatch.
// Other missing or mistyped fields fall back to their zero value.
func FromMatch(m Match) (Perfume, error) {
	if len(m.Metadata) == 0 {
		return Perfume{}, fmt.Errorf("%w: match %q has no metadata", domain.ErrMalformedMatch, m.ID)
	}
	name := stringField(m.Metadata, domain.FieldName)
	if strings.TrimSpace(name) == "" {
		return Perfume{}, fmt.Errorf("%w: match %q has no %s", domain.ErrMalformedMatch, m.ID, domain.FieldName)
	}

	return Perfume{
		ID:              m.ID,
		Name:            name,
		Brand:           stringField(m.Metadata, domain.FieldBrand),
		Gender:          stringField(m.Metadata, domain.FieldGender),
		Rating:          numberField(m.Metadata, domain.FieldRating),
		OlfactoryFamily: stringField(m.Metadata, domain.FieldOlfactoryFamily),
		Notes:           notesField(m.Metadata, domain.FieldNotes),
		ImageURL:        stringField(m.Metadata, domain.FieldImageURL),
		Score:           m.Score,
	}, nil
}

// MapMatches maps every well-formed match in order and reports how many were skipped.
func MapMatches(matches []Match) (perfumes []Perfume, skipped int) {
	perfumes = make([]Perfume, 0, len(matches))
	for _, m := range matches {
		p, err := FromMatch(m)
		if err != nil {
			skipped++
			continue
		}
		perfumes = append(perfumes, p)
	}
	return perfumes, skipped
}

// MatchPercent rescales a similarity score to an integer percentage in [0, 100].
func MatchPercent(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	pct := math.Round(score * 100)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}

func stringField(md map[string]any, key string) string {
	s, _ := md[key].(string)
	return s
}

func numberField(md map[string]any, key string) float64 {
	switch v := md[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func notesField(md map[string]any, key string) string {
	switch v := md[key].(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
