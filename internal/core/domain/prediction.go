package domain

import (
	"time"

	"github.com/google/uuid"
)

type SchemaPolicy string

const (
	SchemaPolicyZeroFill   SchemaPolicy = "zero_fill"
	SchemaPolicyFailFast   SchemaPolicy = "fail_fast"
	SchemaPolicyImputeMean SchemaPolicy = "impute_mean"
)

func (p SchemaPolicy) Valid() bool {
	switch p {
	case SchemaPolicyZeroFill, SchemaPolicyFailFast, SchemaPolicyImputeMean:
		return true
	}
	return false
}

type EncodingStrategy string

const (
	// EncodingEnumerate assigns codes by enumerating the distinct values seen.
	EncodingEnumerate EncodingStrategy = "enumerate"
	// EncodingArtifact prefers the category map stored with the model.
	EncodingArtifact EncodingStrategy = "artifact"
)

func (s EncodingStrategy) Valid() bool {
	return s == EncodingEnumerate || s == EncodingArtifact
}

// UnseenCategoryCode is the code given to a category missing from the
// artifact's encoding map.
const UnseenCategoryCode = -1

// ChurnLabel is the label that means the customer will churn.
const ChurnLabel = 1

type Outcome string

const (
	OutcomeChurn Outcome = "churn"
	OutcomeStay  Outcome = "stay"
)

func OutcomeFor(label int) Outcome {
	if label == ChurnLabel {
		return OutcomeChurn
	}
	return OutcomeStay
}

// FeatureContract is the ordered input schema a classifier was trained on.
type FeatureContract struct {
	Names       []string
	Importances []float64
	Means       []float64
	Encodings   map[string]map[string]int
}

func (c FeatureContract) HasImportances() bool {
	return len(c.Importances) > 0 && len(c.Importances) == len(c.Names)
}

func (c FeatureContract) HasMeans() bool {
	return len(c.Means) > 0 && len(c.Means) == len(c.Names)
}

type AlignedFeature struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Filled bool    `json:"filled"`
}

// AlignedVector is a record projected onto a FeatureContract.
type AlignedVector struct {
	Features        []AlignedFeature
	MissingFeatures []string
	DroppedColumns  []string
}

func (v AlignedVector) Names() []string {
	names := make([]string, len(v.Features))
	for i, f := range v.Features {
		names[i] = f.Name
	}
	return names
}

func (v AlignedVector) Values() []float64 {
	values := make([]float64, len(v.Features))
	for i, f := range v.Features {
		values[i] = f.Value
	}
	return values
}

type Factor struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

type RiskLevel string

const (
	RiskHigh RiskLevel = "high"
	RiskLow  RiskLevel = "low"
)

type Advice struct {
	Risk       RiskLevel `json:"risk"`
	Headline   string    `json:"headline"`
	Title      string    `json:"title"`
	Strategies []string  `json:"strategies"`
	Message    string    `json:"message,omitempty"`
}

type PredictionResult struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	ModelType   string
	Label       int
	Outcome     Outcome
	Probability *float64
	TopFactors  []Factor
	Advice      Advice
	Aligned     AlignedVector
	Warnings    []string
}
