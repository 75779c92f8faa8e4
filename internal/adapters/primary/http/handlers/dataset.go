package handlers

import (
	"net/http"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UploadDataset(c *gin.Context) {
	ds, err := h.readDataset(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDatasetResponse(ds, h.datasetSvc.Preview(ds), h.datasetSvc.Form(ds), services.Choices(ds)))
}
