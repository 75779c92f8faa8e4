package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Health reports the service as up and whether the model artifact loads.
// A missing artifact does not make the service unhealthy: the dashboard
// still serves views and analytics.
func (h *Handler) Health(c *gin.Context) {
	model := "available"
	if _, err := h.loader.Load(c.Request.Context()); err != nil {
		log.WithError(err).Debug("health: model artifact unavailable")
		model = "missing"
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": model})
}
