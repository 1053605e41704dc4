// README: Matching pipeline service: select, build, invoke, parse, persist.
package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/ai"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/config"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/trip"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// insufficientDataComment is the stored analysis for requests the pipeline
// cannot match without an AI call.
const insufficientDataComment = "Analyse impossible : données insuffisantes (coordonnées manquantes ou aucun trajet ouvert)."

type RequestStore interface {
	Get(ctx context.Context, id types.ID) (*request.TripRequest, error)
	SaveRecommendation(ctx context.Context, id types.ID, raw string, at time.Time) error
}

type TripPool interface {
	ListOpen(ctx context.Context) ([]*trip.Trip, error)
}

// Outcome is one pipeline result, parsed and ready for the UI or the scan.
type Outcome struct {
	Raw       string
	Result    Recommendation
	UpdatedAt time.Time
	// Cached is true when the stored recommendation was reused and no AI
	// call happened.
	Cached bool
	// Insufficient is true when the request had no coordinates or the pool
	// yielded no candidates; no AI call happened and nothing was persisted.
	Insufficient bool
	// CandidateCount is how many trips were embedded in the prompt.
	CandidateCount int
}

type Service struct {
	requests RequestStore
	trips    TripPool
	ai       ai.Completer
	quota    aiusage.Quota
	cfg      config.MatchingConfig
	log      *slog.Logger
	now      func() time.Time
}

func NewService(requests RequestStore, trips TripPool, completer ai.Completer, quota aiusage.Quota, cfg config.MatchingConfig, log *slog.Logger) *Service {
	return &Service{
		requests: requests,
		trips:    trips,
		ai:       completer,
		quota:    quota,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Recommend returns the recommendation for one request. Unless force is set,
// a previously stored recommendation short-circuits the pipeline so opening
// the same request twice does not pay for a second AI call.
func (s *Service) Recommend(ctx context.Context, id types.ID, scope string, force bool) (*Outcome, error) {
	r, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !force && r.AIRecommendation != nil {
		return &Outcome{
			Raw:       *r.AIRecommendation,
			Result:    Parse(*r.AIRecommendation),
			UpdatedAt: *r.AIUpdatedAt,
			Cached:    true,
		}, nil
	}

	return s.Generate(ctx, r, scope)
}

// Generate always runs the full pipeline for an already-loaded request and
// overwrites the stored recommendation. The scan orchestrator calls this
// directly; the HTTP force-refresh path reaches it through Recommend.
func (s *Service) Generate(ctx context.Context, r *request.TripRequest, scope string) (*Outcome, error) {
	if r.Origin == nil || r.Destination == nil {
		return &Outcome{
			Result:       Recommendation{InternalComment: insufficientDataComment},
			Insufficient: true,
		}, nil
	}

	pool, err := s.trips.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open trips: %w", err)
	}

	candidates := SelectCandidates(r.Origin, r.Destination, pool, s.cfg.BatchLimit)
	if len(candidates) == 0 {
		return &Outcome{
			Result:       Recommendation{InternalComment: insufficientDataComment},
			Insufficient: true,
		}, nil
	}

	if err := s.quota.UseCall(ctx, scope); err != nil {
		return nil, err
	}

	prompt := BuildPrompt(r, candidates)
	raw, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("recommendation for %s: %w", r.ID, err)
	}

	at := s.now().UTC()
	if err := s.requests.SaveRecommendation(ctx, r.ID, raw, at); err != nil {
		return nil, fmt.Errorf("persist recommendation for %s: %w", r.ID, err)
	}

	return &Outcome{
		Raw:            raw,
		Result:         Parse(raw),
		UpdatedAt:      at,
		CandidateCount: len(candidates),
	}, nil
}

// Candidates computes the interactive map view: a larger candidate set
// partitioned into the fixed radius bands.
func (s *Service) Candidates(ctx context.Context, id types.ID) ([]Band, error) {
	r, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	pool, err := s.trips.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open trips: %w", err)
	}
	return PartitionByRadius(SelectCandidates(r.Origin, r.Destination, pool, s.cfg.InteractiveLimit)), nil
}
