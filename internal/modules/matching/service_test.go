// README: Pipeline service tests with in-memory stores and a scripted model.
package matching

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/config"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/trip"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type mockRequestStore struct {
	req        *request.TripRequest
	saved      []string
	savedAt    []time.Time
	saveErr    error
	getErr     error
	getCalls   int
	applySaves bool
}

func (m *mockRequestStore) Get(ctx context.Context, id types.ID) (*request.TripRequest, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.req, nil
}

func (m *mockRequestStore) SaveRecommendation(ctx context.Context, id types.ID, raw string, at time.Time) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, raw)
	m.savedAt = append(m.savedAt, at)
	if m.applySaves {
		m.req.AIRecommendation = &raw
		m.req.AIUpdatedAt = &at
	}
	return nil
}

type mockTripPool struct {
	trips []*trip.Trip
	err   error
}

func (m *mockTripPool) ListOpen(ctx context.Context) ([]*trip.Trip, error) {
	return m.trips, m.err
}

type mockCompleter struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if m.calls > len(m.responses) {
		return m.responses[len(m.responses)-1], nil
	}
	return m.responses[m.calls-1], nil
}

type mockQuota struct {
	err    error
	calls  int
	scopes []string
}

func (m *mockQuota) UseCall(ctx context.Context, scope string) error {
	m.calls++
	m.scopes = append(m.scopes, scope)
	return m.err
}

func pipelineFixture(req *request.TripRequest, pool []*trip.Trip, responses ...string) (*Service, *mockRequestStore, *mockCompleter, *mockQuota) {
	store := &mockRequestStore{req: req, applySaves: true}
	completer := &mockCompleter{responses: responses}
	quota := &mockQuota{}
	svc := NewService(store, &mockTripPool{trips: pool}, completer, quota,
		config.MatchingConfig{BatchLimit: 5, InteractiveLimit: 50},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return svc, store, completer, quota
}

const rawReply = "[COMMENTAIRE]\nBon match.\n[TRIP_ID]\nTRIP-42\n[MESSAGE]\nBonjour !"

func TestRecommend_GeneratesAndPersists(t *testing.T) {
	svc, store, completer, quota := pipelineFixture(
		testRequest(nil),
		[]*trip.Trip{testTrip("TRIP-42", &dakar, &thies)},
		rawReply,
	)

	out, err := svc.Recommend(context.Background(), "REQ-1", aiusage.ScopeInteractive, false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if out.Cached || out.Insufficient {
		t.Errorf("fresh run flagged cached=%v insufficient=%v", out.Cached, out.Insufficient)
	}
	if out.Raw != rawReply {
		t.Errorf("raw = %q", out.Raw)
	}
	if out.Result.ChosenTripID == nil || *out.Result.ChosenTripID != "TRIP-42" {
		t.Errorf("chosen trip = %v", out.Result.ChosenTripID)
	}
	if out.CandidateCount != 1 {
		t.Errorf("candidate count = %d", out.CandidateCount)
	}
	if completer.calls != 1 || quota.calls != 1 {
		t.Errorf("ai calls = %d, quota calls = %d", completer.calls, quota.calls)
	}
	if quota.scopes[0] != aiusage.ScopeInteractive {
		t.Errorf("quota scope = %q", quota.scopes[0])
	}
	if len(store.saved) != 1 || store.saved[0] != rawReply {
		t.Errorf("saved = %v", store.saved)
	}
	if out.UpdatedAt.IsZero() || out.UpdatedAt.Location() != time.UTC {
		t.Errorf("updated at = %v", out.UpdatedAt)
	}
}

func TestRecommend_CachedSkipsAICall(t *testing.T) {
	req := testRequest(nil)
	stored := rawReply
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	req.AIRecommendation = &stored
	req.AIUpdatedAt = &at

	svc, store, completer, quota := pipelineFixture(req,
		[]*trip.Trip{testTrip("TRIP-42", &dakar, &thies)}, rawReply)

	out, err := svc.Recommend(context.Background(), "REQ-1", aiusage.ScopeInteractive, false)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !out.Cached {
		t.Error("expected cached outcome")
	}
	if out.Raw != stored || !out.UpdatedAt.Equal(at) {
		t.Errorf("cached payload raw=%q at=%v", out.Raw, out.UpdatedAt)
	}
	if completer.calls != 0 || quota.calls != 0 {
		t.Errorf("cached hit must not call AI or quota, got %d/%d", completer.calls, quota.calls)
	}
	if len(store.saved) != 0 {
		t.Error("cached hit must not persist")
	}
}

func TestRecommend_ForceRefreshOverwrites(t *testing.T) {
	first := "[COMMENTAIRE]\nPremier avis.\n[TRIP_ID]\nTRIP-A\n[MESSAGE]\nMessage A"
	second := "[COMMENTAIRE]\nSecond avis.\n[TRIP_ID]\nTRIP-B\n[MESSAGE]\nMessage B"

	svc, store, completer, _ := pipelineFixture(
		testRequest(nil),
		[]*trip.Trip{testTrip("TRIP-A", &dakar, &thies), testTrip("TRIP-B", &dakar, &thies)},
		first, second,
	)

	out1, err := svc.Recommend(context.Background(), "REQ-1", aiusage.ScopeInteractive, true)
	if err != nil {
		t.Fatalf("first force run: %v", err)
	}
	out2, err := svc.Recommend(context.Background(), "REQ-1", aiusage.ScopeInteractive, true)
	if err != nil {
		t.Fatalf("second force run: %v", err)
	}

	if completer.calls != 2 {
		t.Fatalf("force refresh must call the model each time, got %d", completer.calls)
	}
	if out1.Raw != first || out2.Raw != second {
		t.Errorf("raw outputs = %q / %q", out1.Raw, out2.Raw)
	}
	if len(store.saved) != 2 || store.saved[1] != second {
		t.Fatalf("saved = %v", store.saved)
	}
	if *store.req.AIRecommendation != second {
		t.Errorf("stored recommendation = %q, second run must overwrite the first", *store.req.AIRecommendation)
	}
}

func TestGenerate_MissingCoordinatesSkipsAI(t *testing.T) {
	req := testRequest(nil)
	req.Origin = nil

	svc, store, completer, quota := pipelineFixture(req,
		[]*trip.Trip{testTrip("TRIP-42", &dakar, &thies)}, rawReply)

	out, err := svc.Generate(context.Background(), req, aiusage.ScopeBatch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !out.Insufficient {
		t.Error("expected insufficient outcome")
	}
	if out.Result.InternalComment == "" || out.Result.ChosenTripID != nil {
		t.Errorf("result = %+v", out.Result)
	}
	if completer.calls != 0 || quota.calls != 0 || len(store.saved) != 0 {
		t.Error("insufficient data must not call AI, consume quota, or persist")
	}
}

func TestGenerate_NoCandidatesSkipsAI(t *testing.T) {
	svc, store, completer, quota := pipelineFixture(testRequest(nil), nil, rawReply)

	out, err := svc.Generate(context.Background(), testRequest(nil), aiusage.ScopeBatch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !out.Insufficient {
		t.Error("expected insufficient outcome with an empty pool")
	}
	if completer.calls != 0 || quota.calls != 0 || len(store.saved) != 0 {
		t.Error("empty pool must not call AI, consume quota, or persist")
	}
}

func TestGenerate_QuotaExhausted(t *testing.T) {
	svc, store, completer, quota := pipelineFixture(testRequest(nil),
		[]*trip.Trip{testTrip("TRIP-42", &dakar, &thies)}, rawReply)
	quota.err = aiusage.ErrQuotaExhausted

	_, err := svc.Generate(context.Background(), testRequest(nil), aiusage.ScopeInteractive)
	if !errors.Is(err, aiusage.ErrQuotaExhausted) {
		t.Fatalf("err = %v, want quota exhausted", err)
	}
	if completer.calls != 0 || len(store.saved) != 0 {
		t.Error("quota failure must stop before the AI call")
	}
}

func TestGenerate_AIErrorNotPersisted(t *testing.T) {
	svc, store, completer, _ := pipelineFixture(testRequest(nil),
		[]*trip.Trip{testTrip("TRIP-42", &dakar, &thies)})
	completer.err = errors.New("model unavailable")

	_, err := svc.Generate(context.Background(), testRequest(nil), aiusage.ScopeBatch)
	if err == nil {
		t.Fatal("expected error from model failure")
	}
	if len(store.saved) != 0 {
		t.Error("model failure must not persist a recommendation")
	}
}

func TestCandidates_PartitionsIntoBands(t *testing.T) {
	pool := []*trip.Trip{
		testTrip("TRIP-NEAR", shifted(dakar, 2), &thies),
		testTrip("TRIP-FAR", shifted(dakar, 40), &thies),
	}
	svc, _, _, _ := pipelineFixture(testRequest(nil), pool, rawReply)

	bands, err := svc.Candidates(context.Background(), "REQ-1")
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(bands) != len(radiusBands) {
		t.Fatalf("got %d bands, want %d", len(bands), len(radiusBands))
	}
	if len(bands[0].Candidates) != 1 || bands[0].Candidates[0].Trip.ID != "TRIP-NEAR" {
		t.Errorf("inner band = %+v", bands[0].Candidates)
	}
	if len(bands[3].Candidates) != 1 || bands[3].Candidates[0].Trip.ID != "TRIP-FAR" {
		t.Errorf("outer band = %+v", bands[3].Candidates)
	}
}
