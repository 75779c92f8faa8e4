package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/domain"
	"churn-insight-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			mapDomainError(c, domain.ErrEmptyInput)
		case errors.As(err, &tooLarge):
			mapDomainError(c, domain.ErrUploadTooLarge)
		case errors.Is(err, domain.ErrInvalidRecord):
			mapDomainError(c, err)
		default:
			mapDomainError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err))
		}
		return
	}

	result, err := h.predictionSvc.Predict(c.Request.Context(), services.PredictionRequest{
		Record:  req.Record,
		Choices: req.Choices,
	})
	if err != nil {
		logPredictionError(err)
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(result))
}

// PredictUpload predicts for one row of an uploaded CSV, or for the form
// defaults derived from it when no row is given.
func (h *Handler) PredictUpload(c *gin.Context) {
	ds, err := h.readDataset(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	var row *int
	if idx, ok, err := optionalInt(c, "row"); err != nil {
		mapDomainError(c, fmt.Errorf("%w: row must be an integer", domain.ErrRowOutOfRange))
		return
	} else if ok {
		row = &idx
	}

	result, err := h.predictionSvc.PredictFromDataset(c.Request.Context(), ds, row)
	if err != nil {
		logPredictionError(err)
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(result))
}

func logPredictionError(err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrSchemaMismatch),
		errors.Is(err, domain.ErrRowOutOfRange):
		log.WithError(err).Info("prediction rejected")
	case errors.Is(err, domain.ErrArtifactMissing):
		log.WithError(err).Warn("prediction aborted")
	default:
		log.WithError(err).Error("prediction failed")
	}
}
