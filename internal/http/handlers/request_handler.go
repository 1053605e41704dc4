// README: Trip request handlers: listing, triage status, recommendations, candidates.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/matching"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type RequestHandler struct {
	requests *request.Service
	matching *matching.Service
}

func NewRequestHandler(requests *request.Service, matchingSvc *matching.Service) *RequestHandler {
	return &RequestHandler{requests: requests, matching: matchingSvc}
}

type tripRequestView struct {
	ID              string     `json:"id"`
	OriginCity      string     `json:"origin_city"`
	DestinationCity string     `json:"destination_city"`
	DesiredDate     *time.Time `json:"desired_date,omitempty"`
	Status          string     `json:"status"`
	ContactInfo     string     `json:"contact_info,omitempty"`
	HasAIResult     bool       `json:"has_ai_result"`
	AIUpdatedAt     *time.Time `json:"ai_updated_at,omitempty"`
}

func requestView(r *request.TripRequest) tripRequestView {
	return tripRequestView{
		ID:              string(r.ID),
		OriginCity:      r.OriginCity,
		DestinationCity: r.DestinationCity,
		DesiredDate:     r.DesiredDate,
		Status:          string(r.Status),
		ContactInfo:     r.ContactInfo,
		HasAIResult:     r.AIRecommendation != nil,
		AIUpdatedAt:     r.AIUpdatedAt,
	}
}

// ListOpen handles GET /api/requests.
func (h *RequestHandler) ListOpen(c *gin.Context) {
	reqs, err := h.requests.ListOpen(c.Request.Context())
	if err != nil {
		writePipelineError(c, err)
		return
	}
	views := make([]tripRequestView, 0, len(reqs))
	for _, r := range reqs {
		views = append(views, requestView(r))
	}
	writeJSON(c, http.StatusOK, views)
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	r, err := h.requests.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, requestView(r))
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetStatus handles POST /api/requests/:id/status.
func (h *RequestHandler) SetStatus(c *gin.Context) {
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	to := request.Status(req.Status)
	switch to {
	case request.StatusNew, request.StatusReviewed, request.StatusContacted, request.StatusIgnored:
	default:
		writeError(c, http.StatusBadRequest, "unknown status")
		return
	}
	if err := h.requests.SetStatus(c.Request.Context(), types.ID(c.Param("id")), to); err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": to})
}

type recommendationView struct {
	Raw             string     `json:"raw"`
	InternalComment string     `json:"internal_comment"`
	ChosenTripID    *string    `json:"chosen_trip_id,omitempty"`
	CustomerMessage *string    `json:"customer_message,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	Cached          bool       `json:"cached"`
}

func recommendationViewFrom(o *matching.Outcome) recommendationView {
	v := recommendationView{
		Raw:             o.Raw,
		InternalComment: o.Result.InternalComment,
		CustomerMessage: o.Result.CustomerMessage,
		Cached:          o.Cached,
	}
	if o.Result.ChosenTripID != nil {
		id := string(*o.Result.ChosenTripID)
		v.ChosenTripID = &id
	}
	if !o.UpdatedAt.IsZero() {
		t := o.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

// Recommend handles POST /api/requests/:id/recommendation. Reuses the stored
// recommendation when one exists.
func (h *RequestHandler) Recommend(c *gin.Context) {
	h.runPipeline(c, false)
}

// ForceRecommend handles POST /api/requests/:id/recommendation/refresh.
// Always re-invokes the model and overwrites the stored result.
func (h *RequestHandler) ForceRecommend(c *gin.Context) {
	h.runPipeline(c, true)
}

func (h *RequestHandler) runPipeline(c *gin.Context, force bool) {
	ctx := c.Request.Context()
	outcome, err := h.matching.Recommend(ctx, types.ID(c.Param("id")), aiusage.ScopeInteractive, force)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, recommendationViewFrom(outcome))
}

type candidateView struct {
	TripID                string   `json:"trip_id"`
	DepartureCity         string   `json:"departure_city"`
	ArrivalCity           string   `json:"arrival_city"`
	DepartureTime         string   `json:"departure_time"`
	SeatsAvailable        int      `json:"seats_available"`
	OriginDistanceKm      *float64 `json:"origin_distance_km,omitempty"`
	DestinationDistanceKm *float64 `json:"destination_distance_km,omitempty"`
}

type bandView struct {
	MaxKm      float64         `json:"max_km"`
	Candidates []candidateView `json:"candidates"`
}

// Candidates handles GET /api/requests/:id/candidates (interactive map path).
func (h *RequestHandler) Candidates(c *gin.Context) {
	bands, err := h.matching.Candidates(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writePipelineError(c, err)
		return
	}

	views := make([]bandView, 0, len(bands))
	for _, b := range bands {
		bv := bandView{MaxKm: b.MaxKm, Candidates: []candidateView{}}
		for _, cand := range b.Candidates {
			bv.Candidates = append(bv.Candidates, candidateView{
				TripID:                string(cand.Trip.ID),
				DepartureCity:         cand.Trip.DepartureCity,
				ArrivalCity:           cand.Trip.ArrivalCity,
				DepartureTime:         cand.Trip.DepartureTime.Format(time.RFC3339),
				SeatsAvailable:        cand.Trip.SeatsAvailable,
				OriginDistanceKm:      cand.OriginDistanceKm,
				DestinationDistanceKm: cand.DestinationDistanceKm,
			})
		}
		views = append(views, bv)
	}
	writeJSON(c, http.StatusOK, views)
}
