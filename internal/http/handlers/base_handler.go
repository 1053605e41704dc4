// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/aiusage"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/card"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/request"
	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/scan"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePipelineError maps module sentinel errors onto HTTP statuses. Anything
// unmapped (including AI provider failures) surfaces as a 502/500 class
// "ai error" the UI renders as a toast.
func writePipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, request.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, request.ErrNotFound), errors.Is(err, card.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, request.ErrInvalidState), errors.Is(err, request.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, scan.ErrAlreadyRunning):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, aiusage.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
