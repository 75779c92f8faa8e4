package ports

import "context"

// Classifier is a trained model loaded from an artifact.
type Classifier interface {
	ModelType() string
	// FeatureNames is the ordered input schema the model expects.
	FeatureNames() []string
	// FeatureImportances returns one weight per feature name, or false when
	// the model does not expose importances.
	FeatureImportances() ([]float64, bool)
	// FeatureMeans returns one training mean per feature name, or false.
	FeatureMeans() ([]float64, bool)
	// CategoryEncodings maps column -> category -> code as used in training.
	CategoryEncodings() map[string]map[string]int
	// Predict returns the label for one aligned row.
	Predict(vector []float64) (int, error)
}

// ProbabilityEstimator is implemented by classifiers that can score the
// churn label.
type ProbabilityEstimator interface {
	PredictProbability(vector []float64) (float64, error)
}

type ArtifactLoader interface {
	Path() string
	Load(ctx context.Context) (Classifier, error)
}
