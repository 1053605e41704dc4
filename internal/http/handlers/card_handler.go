// README: Recommendation card handlers: list, apply, dismiss, delete.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/card"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/types"
)

type CardHandler struct {
	cards *card.Store
}

func NewCardHandler(cards *card.Store) *CardHandler {
	return &CardHandler{cards: cards}
}

type cardView struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Priority  int       `json:"priority"`
	Title     string    `json:"title"`
	TargetID  string    `json:"target_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/cards?status=PENDING.
func (h *CardHandler) List(c *gin.Context) {
	status := card.Status(c.DefaultQuery("status", string(card.StatusPending)))
	switch status {
	case card.StatusPending, card.StatusApplied, card.StatusDismissed:
	default:
		writeError(c, http.StatusBadRequest, "unknown status")
		return
	}

	cards, err := h.cards.ListByStatus(c.Request.Context(), status)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	views := make([]cardView, 0, len(cards))
	for _, cd := range cards {
		views = append(views, cardView{
			ID:        string(cd.ID),
			Type:      string(cd.Type),
			Priority:  cd.Priority,
			Title:     cd.Title,
			TargetID:  string(cd.TargetID),
			Status:    string(cd.Status),
			CreatedAt: cd.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, views)
}

// Apply handles POST /api/cards/:id/apply.
func (h *CardHandler) Apply(c *gin.Context) {
	h.setStatus(c, card.StatusApplied)
}

// Dismiss handles POST /api/cards/:id/dismiss.
func (h *CardHandler) Dismiss(c *gin.Context) {
	h.setStatus(c, card.StatusDismissed)
}

func (h *CardHandler) setStatus(c *gin.Context, status card.Status) {
	if err := h.cards.SetStatus(c.Request.Context(), types.ID(c.Param("id")), status); err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": status})
}

// Delete handles DELETE /api/cards/:id (history cleanup).
func (h *CardHandler) Delete(c *gin.Context) {
	if err := h.cards.Delete(c.Request.Context(), types.ID(c.Param("id"))); err != nil {
		writePipelineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
