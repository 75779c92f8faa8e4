package handlers

import (
	ports "churn-insight-service/internal/core/ports/output"
	"churn-insight-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	datasetSvc    *services.DatasetService
	predictionSvc *services.PredictionService
	analyticsSvc  *services.AnalyticsService
	viewSvc       *services.ViewService
	loader        ports.ArtifactLoader
}

func New(
	datasetSvc *services.DatasetService,
	predictionSvc *services.PredictionService,
	analyticsSvc *services.AnalyticsService,
	viewSvc *services.ViewService,
	loader ports.ArtifactLoader,
) *Handler {
	return &Handler{
		datasetSvc:    datasetSvc,
		predictionSvc: predictionSvc,
		analyticsSvc:  analyticsSvc,
		viewSvc:       viewSvc,
		loader:        loader,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Views
	r.GET("/views", h.ListViews)
	r.GET("/views/:name", h.GetView)

	// Datasets
	r.POST("/datasets", h.UploadDataset)

	// Predictions
	r.POST("/predictions", h.Predict)
	r.POST("/predictions/upload", h.PredictUpload)

	// Analytics
	r.POST("/analytics", h.Analyze)
}
