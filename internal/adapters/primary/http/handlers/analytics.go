package handlers

import (
	"net/http"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Analyze(c *gin.Context) {
	ds, err := h.readDataset(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	bins, _, err := optionalInt(c, "bins")
	if err != nil || bins < 0 {
		mapDomainError(c, domain.ErrInvalidBins)
		return
	}

	report, err := h.analyticsSvc.Analyze(ds, formOrQuery(c, "column"), bins)
	if err != nil {
		log.WithError(err).Info("analytics rejected")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(report))
}
