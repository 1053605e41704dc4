// README: Prompt builder tests: determinism, date phrasing, output contract.
package matching

import (
	"strings"
	"testing"
	"time"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

func testRequest(date *time.Time) *request.TripRequest {
	return &request.TripRequest{
		ID:              types.ID("REQ-1"),
		OriginCity:      "Dakar",
		DestinationCity: "Thiès",
		Origin:          &dakar,
		Destination:     &thies,
		DesiredDate:     date,
		Status:          request.StatusNew,
	}
}

func testCandidates() []Candidate {
	od, dd := 2.34, 1.08
	return []Candidate{{
		Trip:                  testTrip("TRIP-42", &dakar, &thies),
		OriginDistanceKm:      &od,
		DestinationDistanceKm: &dd,
	}}
}

func TestBuildPrompt_ContainsOutputContract(t *testing.T) {
	p := BuildPrompt(testRequest(nil), testCandidates())

	for _, marker := range []string{"[COMMENTAIRE]", "[TRIP_ID]", "[MESSAGE]", "NONE"} {
		if !strings.Contains(p, marker) {
			t.Errorf("prompt missing %q", marker)
		}
	}
}

func TestBuildPrompt_DesiredDate(t *testing.T) {
	p := BuildPrompt(testRequest(nil), testCandidates())
	if !strings.Contains(p, "dès que possible") {
		t.Error("nil desired date must render as 'dès que possible'")
	}

	d := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC) // a Monday
	p = BuildPrompt(testRequest(&d), testCandidates())
	if !strings.Contains(p, "lundi 14 septembre 2026") {
		t.Error("desired date must render in long French form")
	}
}

func TestBuildPrompt_CandidateSerialization(t *testing.T) {
	p := BuildPrompt(testRequest(nil), testCandidates())

	if !strings.Contains(p, "[TRIP-42]") {
		t.Error("candidate id missing")
	}
	if !strings.Contains(p, "distance départ 2.3 km") || !strings.Contains(p, "distance arrivée 1.1 km") {
		t.Errorf("distances must render as X.X km, got:\n%s", p)
	}
	if !strings.Contains(p, "3 place(s)") {
		t.Error("seat count missing")
	}
}

func TestBuildPrompt_NoCandidates(t *testing.T) {
	p := BuildPrompt(testRequest(nil), nil)
	if !strings.Contains(p, "AUCUN") {
		t.Error("empty candidate list must serialize as AUCUN")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	r := testRequest(nil)
	c := testCandidates()
	if BuildPrompt(r, c) != BuildPrompt(r, c) {
		t.Error("BuildPrompt must be deterministic for identical inputs")
	}
}

func TestFrenchLongDate(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "lundi 2 juin 2025"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "jeudi 1 janvier 2026"},
		{time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), "dimanche 30 août 2026"},
	}
	for _, tc := range cases {
		if got := FrenchLongDate(tc.t); got != tc.want {
			t.Errorf("FrenchLongDate(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
