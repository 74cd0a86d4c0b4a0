package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/search/facet"
	"github.com/kailas-cloud/scentdex/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	MinRating      = 0.0
	MaxRating      = 5.0
)

// Limits bounds the number of results a caller may ask for.
type Limits struct {
	DefaultTopK int
	MinTopK     int
	MaxTopK     int // 0 = unbounded
}

var (
	// ToolLimits apply to agent tool calls.
	ToolLimits = Limits{DefaultTopK: 5, MinTopK: 1, MaxTopK: 10}
	// CLILimits apply to the command-line demo.
	CLILimits = Limits{DefaultTopK: 10, MinTopK: 1}
)

// Filters holds the optional structured constraints of a perfume search.
// Empty strings and a nil or zero MinRating impose no constraint.
type Filters struct {
	Gender          facet.Gender
	Brand           string
	PrimarySeason   facet.Season
	OlfactoryFamily string
	MinRating       *float64
	PricePerception facet.PriceTier
}

// Validate checks enumerations and the rating range of every present field.
func (f Filters) Validate() error {
	if f.Gender != "" && !f.Gender.IsValid() {
		return fmt.Errorf("gender must be one of %v, got %q", facet.Genders, f.Gender)
	}
	if f.PrimarySeason != "" && !f.PrimarySeason.IsValid() {
		return fmt.Errorf("primary_season must be one of %v, got %q", facet.Seasons, f.PrimarySeason)
	}
	if f.PricePerception != "" && !f.PricePerception.IsValid() {
		return fmt.Errorf("price_perception must be one of %v, got %q", facet.PriceTiers, f.PricePerception)
	}
	if f.MinRating != nil && (*f.MinRating < MinRating || *f.MinRating > MaxRating) {
		return fmt.Errorf("min_rating must be between %g and %g, got %g", MinRating, MaxRating, *f.MinRating)
	}
	return nil
}

// Expression translates the present fields into a conjunctive filter:
// min_rating becomes a lower bound on rating_score, every other field an equality match.
func (f Filters) Expression() (filter.Expression, error) {
	var conds []filter.Condition

	eq := func(key, value string) error {
		if value == "" {
			return nil
		}
		c, err := filter.Eq(key, value)
		if err != nil {
			return err
		}
		conds = append(conds, c)
		return nil
	}

	if err := eq(domain.FieldGender, string(f.Gender)); err != nil {
		return filter.Expression{}, err
	}
	if err := eq(domain.FieldBrand, f.Brand); err != nil {
		return filter.Expression{}, err
	}
	if err := eq(domain.FieldPrimarySeason, string(f.PrimarySeason)); err != nil {
		return filter.Expression{}, err
	}
	if err := eq(domain.FieldOlfactoryFamily, f.OlfactoryFamily); err != nil {
		return filter.Expression{}, err
	}
	if f.MinRating != nil && *f.MinRating != 0 {
		c, err := filter.Gte(domain.FieldRating, *f.MinRating)
		if err != nil {
			return filter.Expression{}, err
		}
		conds = append(conds, c)
	}
	if err := eq(domain.FieldPricePerception, string(f.PricePerception)); err != nil {
		return filter.Expression{}, err
	}

	return filter.NewExpression(conds...)
}

// Request is a validated perfume search.
type Request struct {
	query   string
	filters filter.Expression
	topK    int
}

// New validates and normalizes search parameters.
// A nil topK takes the default from limits. All failures wrap domain.ErrInvalidInput.
func New(query string, filters Filters, topK *int, limits Limits) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidInput, MaxQueryLength)
	}

	k := limits.DefaultTopK
	if topK != nil {
		k = *topK
	}
	if k < limits.MinTopK || (limits.MaxTopK > 0 && k > limits.MaxTopK) {
		if limits.MaxTopK > 0 {
			return Request{}, fmt.Errorf("%w: topK must be between %d and %d, got %d",
				domain.ErrInvalidInput, limits.MinTopK, limits.MaxTopK, k)
		}
		return Request{}, fmt.Errorf("%w: topK must be at least %d, got %d",
			domain.ErrInvalidInput, limits.MinTopK, k)
	}

	if err := filters.Validate(); err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	expr, err := filters.Expression()
	if err != nil {
		return Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	return Request{query: query, filters: expr, topK: k}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Filters returns the translated pre-filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// TopK returns the number of nearest neighbors to retrieve.
func (r *Request) TopK() int { return r.topK }
