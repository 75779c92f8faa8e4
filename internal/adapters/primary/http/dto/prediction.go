package dto

import (
	"time"

	"github.com/google/uuid"

	"churn-insight-service/internal/core/domain"
)

type PredictRequest struct {
	Record  domain.RawRecord    `json:"record"`
	Choices map[string][]string `json:"choices"`
}

type FactorResponse struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

type AdviceResponse struct {
	Risk       string   `json:"risk"`
	Headline   string   `json:"headline"`
	Title      string   `json:"title"`
	Strategies []string `json:"strategies"`
	Message    string   `json:"message,omitempty"`
}

type PredictionResponse struct {
	ID              uuid.UUID               `json:"id"`
	CreatedAt       time.Time               `json:"created_at"`
	ModelType       string                  `json:"model_type"`
	Label           int                     `json:"label"`
	Outcome         string                  `json:"outcome"`
	Probability     *float64                `json:"probability,omitempty"`
	TopFactors      []FactorResponse        `json:"top_factors,omitempty"`
	Advice          AdviceResponse          `json:"advice"`
	AlignedFeatures []domain.AlignedFeature `json:"aligned_features"`
	MissingFeatures []string                `json:"missing_features"`
	DroppedColumns  []string                `json:"dropped_columns"`
	Warnings        []string                `json:"warnings"`
}

func ToPredictionResponse(r *domain.PredictionResult) PredictionResponse {
	resp := PredictionResponse{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		ModelType:   r.ModelType,
		Label:       r.Label,
		Outcome:     string(r.Outcome),
		Probability: r.Probability,
		Advice: AdviceResponse{
			Risk:       string(r.Advice.Risk),
			Headline:   r.Advice.Headline,
			Title:      r.Advice.Title,
			Strategies: r.Advice.Strategies,
			Message:    r.Advice.Message,
		},
		AlignedFeatures: r.Aligned.Features,
		MissingFeatures: nonNil(r.Aligned.MissingFeatures),
		DroppedColumns:  nonNil(r.Aligned.DroppedColumns),
		Warnings:        nonNil(r.Warnings),
	}

	for _, f := range r.TopFactors {
		resp.TopFactors = append(resp.TopFactors, FactorResponse{Feature: f.Feature, Importance: f.Importance})
	}

	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
