// README: Global scan trigger handler.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TsakasAchille/KlandoDash-sub000/internal/modules/scan"
)

type ScanHandler struct {
	scan *scan.Service
}

func NewScanHandler(svc *scan.Service) *ScanHandler {
	return &ScanHandler{scan: svc}
}

// Run handles POST /api/scan. The response count feeds the UI toast.
func (h *ScanHandler) Run(c *gin.Context) {
	inserted, err := h.scan.Run(c.Request.Context())
	if err != nil {
		writePipelineError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"cards_inserted": inserted})
}
