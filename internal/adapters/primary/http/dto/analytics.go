package dto

import "churn-insight-service/internal/core/domain"

type PieChartResponse struct {
	ChartType string            `json:"chart_type"`
	Column    string            `json:"column"`
	Title     string            `json:"title"`
	Slices    []domain.PieSlice `json:"slices"`
	Colors    []string          `json:"colors"`
}

type HistogramResponse struct {
	ChartType string                `json:"chart_type"`
	Column    string                `json:"column"`
	Title     string                `json:"title"`
	Bins      []domain.HistogramBin `json:"bins"`
	Colors    []string              `json:"colors"`
}

type AnalyticsResponse struct {
	RowCount          int                `json:"row_count"`
	NumericColumns    []string           `json:"numeric_columns"`
	ChurnDistribution *PieChartResponse  `json:"churn_distribution"`
	Histogram         *HistogramResponse `json:"histogram"`
	Notices           []string           `json:"notices"`
}

func ToAnalyticsResponse(r *domain.AnalyticsReport) AnalyticsResponse {
	resp := AnalyticsResponse{
		RowCount:       r.RowCount,
		NumericColumns: nonNil(r.NumericColumns),
		Notices:        nonNil(r.Notices),
	}

	if p := r.ChurnDistribution; p != nil {
		resp.ChurnDistribution = &PieChartResponse{
			ChartType: "pie",
			Column:    p.Column,
			Title:     p.Title,
			Slices:    p.Slices,
			Colors:    p.Colors,
		}
	}
	if h := r.Histogram; h != nil {
		resp.Histogram = &HistogramResponse{
			ChartType: "histogram",
			Column:    h.Column,
			Title:     h.Title,
			Bins:      h.Bins,
			Colors:    h.Colors,
		}
	}

	return resp
}
