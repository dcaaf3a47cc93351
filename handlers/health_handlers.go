package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caknak/email_check_api/models"
	"github.com/caknak/email_check_api/pkg/handoff"
)

type HealthHandler struct {
	upstreamConfigured bool
	handoffs           *handoff.Store
}

func NewHealthHandler(upstreamConfigured bool, handoffs *handoff.Store) *HealthHandler {
	return &HealthHandler{upstreamConfigured: upstreamConfigured, handoffs: handoffs}
}

// HealthCheckHandler godoc
// @Summary      Health Check
// @Description  Checks the health of the API and reports whether a breach registry key is configured.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	pending := 0
	if h.handoffs != nil {
		pending = h.handoffs.Len()
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:             "UP",
		UpstreamConfigured: h.upstreamConfigured,
		SimulationFallback: true,
		PendingHandoffs:    pending,
	})
}
