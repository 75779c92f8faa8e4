package dto

import "churn-insight-service/internal/core/domain"

type FormFieldResponse struct {
	Name    string      `json:"name"`
	Label   string      `json:"label"`
	Kind    string      `json:"kind"`
	Choices []string    `json:"choices,omitempty"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Default interface{} `json:"default"`
}

type DatasetResponse struct {
	Columns  []domain.Column     `json:"columns"`
	RowCount int                 `json:"row_count"`
	Preview  []domain.RawRecord  `json:"preview"`
	Form     []FormFieldResponse `json:"form"`
	Choices  map[string][]string `json:"choices"`
}

func ToFormFieldResponse(f domain.FormField) FormFieldResponse {
	resp := FormFieldResponse{
		Name:  f.Name,
		Label: f.Label,
		Kind:  string(f.Kind),
	}

	switch {
	case f.Kind == domain.FormFieldNumeric && f.Numeric != nil:
		lo, hi := f.Numeric.Min, f.Numeric.Max
		resp.Min = &lo
		resp.Max = &hi
		resp.Default = f.Numeric.Default
	case f.Categorical != nil:
		resp.Choices = f.Categorical.Choices
		resp.Default = f.Categorical.Default
	}

	return resp
}

func ToDatasetResponse(ds *domain.Dataset, preview []domain.RawRecord, form []domain.FormField, choices map[string][]string) DatasetResponse {
	fields := make([]FormFieldResponse, 0, len(form))
	for _, f := range form {
		fields = append(fields, ToFormFieldResponse(f))
	}

	return DatasetResponse{
		Columns:  ds.Columns,
		RowCount: ds.RowCount(),
		Preview:  preview,
		Form:     fields,
		Choices:  choices,
	}
}
