// README: Global scan orchestrator; regenerates recommendations and replaces PENDING cards.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/config"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/card"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/driver"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/matching"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/observability"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

// ErrAlreadyRunning is returned when another global scan holds the run lock.
var ErrAlreadyRunning = errors.New("a global scan is already running")

// Card priorities by type. Lower sorts first on the dashboard.
const (
	priorityTraction   = 1
	priorityEngagement = 2
	priorityStrategic  = 3
	priorityQuality    = 4
)

type RequestSource interface {
	ListOpen(ctx context.Context) ([]*request.TripRequest, error)
}

type Recommender interface {
	Generate(ctx context.Context, r *request.TripRequest, scope string) (*matching.Outcome, error)
}

type CardSink interface {
	ReplacePending(ctx context.Context, cards []card.Card) (int, error)
}

type DriverSource interface {
	ListUnverified(ctx context.Context, limit int) ([]driver.Driver, error)
}

type RunLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type Service struct {
	requests    RequestSource
	recommender Recommender
	cards       CardSink
	drivers     DriverSource
	lock        RunLock
	cfg         config.ScanConfig
	log         *slog.Logger
	now         func() time.Time
	newID       func() types.ID
}

func NewService(requests RequestSource, recommender Recommender, cards CardSink, drivers DriverSource, lock RunLock, cfg config.ScanConfig, log *slog.Logger) *Service {
	return &Service{
		requests:    requests,
		recommender: recommender,
		cards:       cards,
		drivers:     drivers,
		lock:        lock,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
		newID:       func() types.ID { return types.ID(uuid.NewString()) },
	}
}

// itemResult carries one request's pipeline outcome to the aggregation step.
type itemResult struct {
	req     *request.TripRequest
	outcome *matching.Outcome
}

// Run executes one global scan: regenerate a recommendation for every open
// request, aggregate the dashboard cards, and replace the PENDING set.
// One request's failure never aborts the run; it is logged and skipped.
// Returns the number of cards inserted.
func (s *Service) Run(ctx context.Context) (int, error) {
	ok, err := s.lock.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire scan lock: %w", err)
	}
	if !ok {
		return 0, ErrAlreadyRunning
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn("release scan lock", "err", err)
		}
	}()

	started := s.now()
	observability.ScanRunsTotal.Inc()
	defer func() {
		observability.ScanDuration.Observe(time.Since(started).Seconds())
	}()

	reqs, err := s.requests.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("list open requests: %w", err)
	}
	s.log.Info("global scan started", "open_requests", len(reqs), "concurrency", s.concurrency())

	results := s.processRequests(ctx, reqs)

	cards := s.buildCards(results)
	cards = append(cards, s.qualityCards(ctx)...)

	inserted, err := s.cards.ReplacePending(ctx, cards)
	if err != nil {
		return 0, fmt.Errorf("replace pending cards: %w", err)
	}
	observability.CardsInserted.Add(float64(inserted))

	s.log.Info("global scan done", "cards_inserted", inserted, "elapsed", time.Since(started))
	return inserted, nil
}

// processRequests runs the matching pipeline for each request through a
// bounded worker pool. Concurrency 1 reproduces the original strictly
// sequential behaviour; requests do not interact, so no cross-request
// ordering is needed.
func (s *Service) processRequests(ctx context.Context, reqs []*request.TripRequest) []itemResult {
	var (
		mu      sync.Mutex
		results []itemResult
		wg      sync.WaitGroup
		sem     = make(chan struct{}, s.concurrency())
	)

	for _, r := range reqs {
		wg.Add(1)
		sem <- struct{}{}
		go func(r *request.TripRequest) {
			defer wg.Done()
			defer func() { <-sem }()

			outcome, err := s.recommender.Generate(ctx, r, aiusage.ScopeBatch)
			if err != nil {
				// Failure isolation: log and move on to the next request.
				s.log.Error("scan item failed", "request_id", r.ID, "err", err)
				return
			}
			mu.Lock()
			results = append(results, itemResult{req: r, outcome: outcome})
			mu.Unlock()
		}(r)
	}
	wg.Wait()
	return results
}

func (s *Service) concurrency() int {
	if s.cfg.Concurrency < 1 {
		return 1
	}
	return s.cfg.Concurrency
}

// buildCards turns pipeline outcomes into dashboard cards. Requests the
// pipeline skipped (no coordinates, no candidates) produce no card.
func (s *Service) buildCards(results []itemResult) []card.Card {
	now := s.now().UTC()
	var cards []card.Card

	for _, it := range results {
		if it.outcome.Insufficient {
			continue
		}
		rec := it.outcome.Result

		switch {
		case rec.ChosenTripID != nil && rec.CustomerMessage != nil:
			cards = append(cards, card.Card{
				ID:        s.newID(),
				Type:      card.TypeTraction,
				Priority:  priorityTraction,
				Title:     fmt.Sprintf("Proposer %s pour %s → %s", *rec.ChosenTripID, it.req.OriginCity, it.req.DestinationCity),
				TargetID:  it.req.ID,
				Status:    card.StatusPending,
				CreatedAt: now,
			})
		case rec.ChosenTripID != nil:
			// A match without a drafted message still needs staff outreach.
			cards = append(cards, card.Card{
				ID:        s.newID(),
				Type:      card.TypeEngagement,
				Priority:  priorityEngagement,
				Title:     fmt.Sprintf("Rédiger un message pour %s → %s (trajet %s)", it.req.OriginCity, it.req.DestinationCity, *rec.ChosenTripID),
				TargetID:  it.req.ID,
				Status:    card.StatusPending,
				CreatedAt: now,
			})
		default:
			cards = append(cards, card.Card{
				ID:        s.newID(),
				Type:      card.TypeStrategic,
				Priority:  priorityStrategic,
				Title:     fmt.Sprintf("Aucun trajet adapté pour %s → %s : envisager une nouvelle offre", it.req.OriginCity, it.req.DestinationCity),
				TargetID:  it.req.ID,
				Status:    card.StatusPending,
				CreatedAt: now,
			})
		}
	}
	return cards
}

// qualityCards lists long-pending unverified drivers. Independent of the
// matching pipeline but shares the card table and replace semantics.
func (s *Service) qualityCards(ctx context.Context) []card.Card {
	drivers, err := s.drivers.ListUnverified(ctx, s.cfg.QualityCardLimit)
	if err != nil {
		s.log.Error("list unverified drivers", "err", err)
		return nil
	}

	now := s.now().UTC()
	cards := make([]card.Card, 0, len(drivers))
	for _, d := range drivers {
		cards = append(cards, card.Card{
			ID:        s.newID(),
			Type:      card.TypeQuality,
			Priority:  priorityQuality,
			Title:     fmt.Sprintf("Vérifier les documents de %s", d.FullName),
			TargetID:  d.ID,
			Status:    card.StatusPending,
			CreatedAt: now,
		})
	}
	return cards
}
