// Package tool adapts the perfume search pipeline to agent tool calls.
package tool

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scentdex/internal/domain"
	"github.com/kailas-cloud/scentdex/internal/domain/perfume"
	"github.com/kailas-cloud/scentdex/internal/domain/search/facet"
	"github.com/kailas-cloud/scentdex/internal/domain/search/request"
	"github.com/kailas-cloud/scentdex/internal/logger"
	"github.com/kailas-cloud/scentdex/internal/metrics"
)

// Name is the tool identifier exposed to agent frameworks.
const Name = "search_perfumes"

// Description tells the calling model when to use the tool.
const Description = "Search the perfume catalog with a natural-language description of a scent. " +
	"Optionally filter by gender, brand, primary season, olfactory family, minimum rating and price tier. " +
	"Returns the closest perfumes with a match score from 0 to 100."

// User-facing envelope messages. Error detail never reaches the caller.
const (
	MessageNoResults = "No perfumes found matching your criteria. Try adjusting your filters or search terms."
	MessageFailure   = "Sorry, something went wrong while searching for perfumes. Please try again."
	messageFound     = "Found %d perfumes matching your search."
)

// Call outcomes for scentdex_tool_calls_total.
const (
	OutcomeSuccess   = "success"
	OutcomeNoResults = "no_results"
)

// Input is the search_perfumes argument object.
type Input struct {
	Query           string   `json:"query"`
	Gender          string   `json:"gender,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	PrimarySeason   string   `json:"primary_season,omitempty"`
	OlfactoryFamily string   `json:"olfactory_family,omitempty"`
	MinRating       *float64 `json:"min_rating,omitempty"`
	PricePerception string   `json:"price_perception,omitempty"`
	TopK            *int     `json:"topK,omitempty"`
}

// Request validates the input with tool limits (topK 1..10, default 5).
func (in Input) Request() (request.Request, error) {
	return request.New(in.Query, request.Filters{
		Gender:          facet.Gender(in.Gender),
		Brand:           in.Brand,
		PrimarySeason:   facet.Season(in.PrimarySeason),
		OlfactoryFamily: in.OlfactoryFamily,
		MinRating:       in.MinRating,
		PricePerception: facet.PriceTier(in.PricePerception),
	}, in.TopK, request.ToolLimits)
}

// Envelope is the tool result. Success is true iff Perfumes is non-empty.
type Envelope struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Perfumes []PerfumeView `json:"perfumes"`
	// Kind classifies a failure for logs and metrics; never serialized.
	Kind domain.Kind `json:"-"`
}

// PerfumeView is a perfume as presented to the calling agent.
type PerfumeView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	Gender          string  `json:"gender"`
	Rating          float64 `json:"rating"`
	OlfactoryFamily string  `json:"olfactoryFamily"`
	Notes           string  `json:"notes"`
	ImageURL        string  `json:"imageUrl"`
	MatchScore      int     `json:"matchScore"`
}

// NewPerfumeView rescales the similarity score to an integer percentage.
func NewPerfumeView(p perfume.Perfume) PerfumeView {
	return PerfumeView{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Gender:          p.Gender,
		Rating:          p.Rating,
		OlfactoryFamily: p.OlfactoryFamily,
		Notes:           p.Notes,
		ImageURL:        p.ImageURL,
		MatchScore:      perfume.MatchPercent(p.Score),
	}
}

// Adapter is the search_perfumes tool.
type Adapter struct {
	search Searcher
	logger *zap.Logger
}

// NewAdapter creates the tool adapter.
func NewAdapter(search Searcher, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{search: search, logger: logger}
}

// SearchPerfumes validates in, runs one search and builds the envelope.
//
// Invalid input returns a domain.ErrInvalidInput error before any network call,
// so the calling framework can report schema detail. Every failure after
// validation is logged and folded into a generic failure envelope with a nil error.
func (a *Adapter) SearchPerfumes(ctx context.Context, in Input) (Envelope, error) {
	req, err := in.Request()
	if err != nil {
		metrics.ToolCallsTotal.WithLabelValues(Name, string(domain.KindInvalidInput)).Inc()
		return Envelope{}, err
	}

	log := logger.FromContextOr(ctx, a.logger)

	perfumes, err := a.search.Search(ctx, &req)
	if err != nil {
		kind := domain.ErrorKind(err)
		metrics.ToolCallsTotal.WithLabelValues(Name, string(kind)).Inc()
		log.Error("perfume search failed",
			zap.String("tool", Name),
			zap.String("error_kind", string(kind)),
			zap.Int("top_k", req.TopK()),
			zap.Error(err),
		)
		return Failure(kind), nil
	}

	if len(perfumes) == 0 {
		metrics.ToolCallsTotal.WithLabelValues(Name, OutcomeNoResults).Inc()
		log.Info("perfume search returned no results", zap.String("tool", Name))
		return NoResults(), nil
	}

	metrics.ToolCallsTotal.WithLabelValues(Name, OutcomeSuccess).Inc()
	log.Debug("perfume search succeeded",
		zap.String("tool", Name),
		zap.Int("results", len(perfumes)),
	)
	return Found(perfumes), nil
}

// Found builds the success envelope. An empty list yields NoResults.
func Found(perfumes []perfume.Perfume) Envelope {
	if len(perfumes) == 0 {
		return NoResults()
	}
	views := make([]PerfumeView, 0, len(perfumes))
	for _, p := range perfumes {
		views = append(views, NewPerfumeView(p))
	}
	return Envelope{
		Success:  true,
		Message:  fmt.Sprintf(messageFound, len(views)),
		Perfumes: views,
	}
}

// NoResults builds the empty-result envelope.
func NoResults() Envelope {
	return Envelope{Message: MessageNoResults, Perfumes: []PerfumeView{}}
}

// Failure builds the generic failure envelope.
func Failure(kind domain.Kind) Envelope {
	return Envelope{Message: MessageFailure, Perfumes: []PerfumeView{}, Kind: kind}
}
