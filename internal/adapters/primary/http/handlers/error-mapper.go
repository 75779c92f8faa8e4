package handlers

import (
	"errors"
	"net/http"

	"churn-insight-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	messageArtifactMissing = "Model not found! Please add the model artifact to the service folder."
	messageEmptyInput      = "Please upload a CSV file to continue."
)

func mapDomainError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	// Guided empty state
	case errors.Is(err, domain.ErrEmptyInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "message": messageEmptyInput})

	// Model unavailable
	case errors.Is(err, domain.ErrArtifactMissing):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "message": messageArtifactMissing})

	// Not found errors
	case errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrUnknownView):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrMalformedDataset),
		errors.Is(err, domain.ErrInvalidRecord),
		errors.Is(err, domain.ErrRowOutOfRange),
		errors.Is(err, domain.ErrColumnNotNumeric),
		errors.Is(err, domain.ErrSchemaMismatch),
		errors.Is(err, domain.ErrInvalidBins):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
