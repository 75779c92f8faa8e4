package dto

import "churn-insight-service/internal/core/domain"

type ViewResponse struct {
	Name        string               `json:"name"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Sections    []domain.ViewSection `json:"sections"`
}

type ListViewsResponse struct {
	Items   []ViewResponse `json:"items"`
	Default string         `json:"default"`
}

func ToViewResponse(v domain.View) ViewResponse {
	return ViewResponse{
		Name:        string(v.Name),
		Title:       v.Title,
		Description: v.Description,
		Sections:    v.Sections,
	}
}
