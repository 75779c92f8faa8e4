package handlers

import (
	"net/http"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListViews(c *gin.Context) {
	views := h.viewSvc.List()
	items := make([]dto.ViewResponse, 0, len(views))
	for _, v := range views {
		items = append(items, dto.ToViewResponse(v))
	}

	c.JSON(http.StatusOK, dto.ListViewsResponse{
		Items:   items,
		Default: string(domain.DefaultView),
	})
}

func (h *Handler) GetView(c *gin.Context) {
	view, err := h.viewSvc.Get(c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToViewResponse(view))
}
