package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"churn-insight-service/internal/core/domain"
	ports "churn-insight-service/internal/core/ports/output"
)

const treeJSON = `{
  "model_type": "decision_tree",
  "version": "2024-06-01",
  "feature_names": ["tenure", "contract"],
  "feature_importances": [0.65, 0.35],
  "category_encodings": {"contract": {"Month-to-month": 0, "One year": 1, "Two year": 2}},
  "tree": [
    {"feature_idx": 0, "threshold": 12, "left_child": 1, "right_child": 2},
    {"is_leaf": true, "class_label": 1, "probability": 0.8},
    {"is_leaf": true, "class_label": 0}
  ]
}`

const logisticYAML = `model_type: logistic_regression
feature_names: [monthly_charges, senior]
feature_means: [64.7, 0.16]
coefficients: [0.05, 1.0]
intercept: -4
threshold: 0.5
`

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_DecisionTree(t *testing.T) {
	loader := NewFileLoader(writeArtifact(t, "model.json", treeJSON))

	classifier, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ModelTypeDecisionTree, classifier.ModelType())
	assert.Equal(t, []string{"tenure", "contract"}, classifier.FeatureNames())
	importances, ok := classifier.FeatureImportances()
	assert.True(t, ok)
	assert.Equal(t, []float64{0.65, 0.35}, importances)
	_, ok = classifier.FeatureMeans()
	assert.False(t, ok)
	assert.Equal(t, 2, classifier.CategoryEncodings()["contract"]["Two year"])

	label, err := classifier.Predict([]float64{3, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	label, err = classifier.Predict([]float64{40, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	estimator, ok := classifier.(ports.ProbabilityEstimator)
	require.True(t, ok)
	p, err := estimator.PredictProbability([]float64{12, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.8, p)
	p, err = estimator.PredictProbability([]float64{13, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestFileLoader_LogisticYAML(t *testing.T) {
	loader := NewFileLoader(writeArtifact(t, "model.yaml", logisticYAML))

	classifier, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModelTypeLogisticRegression, classifier.ModelType())

	means, ok := classifier.FeatureMeans()
	assert.True(t, ok)
	assert.Equal(t, []float64{64.7, 0.16}, means)

	// z = 0.05*100 + 1 - 4 = 2
	label, err := classifier.Predict([]float64{100, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	// z = 0.05*20 - 4 = -3
	label, err = classifier.Predict([]float64{20, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	p, err := classifier.(ports.ProbabilityEstimator).PredictProbability([]float64{80, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-9)
}

func TestFileLoader_Missing(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "model.json"))

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestFileLoader_Corrupt(t *testing.T) {
	loader := NewFileLoader(writeArtifact(t, "model.json", "{not json"))

	_, err := loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestFileLoader_PicksUpReplacedFile(t *testing.T) {
	path := writeArtifact(t, "model.json", treeJSON)
	loader := NewFileLoader(path)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = loader.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestFileLoader_CanceledContext(t *testing.T) {
	loader := NewFileLoader(writeArtifact(t, "model.json", treeJSON))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileLoader_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultPath, NewFileLoader("").Path())
}

func TestDecode_Validation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no model type", `{"feature_names": ["a"], "tree": [{"is_leaf": true}]}`},
		{"unknown model type", `{"model_type": "svm", "feature_names": ["a"]}`},
		{"no features", `{"model_type": "decision_tree", "feature_names": [], "tree": [{"is_leaf": true}]}`},
		{"blank feature", `{"model_type": "decision_tree", "feature_names": ["a", " "], "tree": [{"is_leaf": true}]}`},
		{"duplicate feature", `{"model_type": "decision_tree", "feature_names": ["a", "a"], "tree": [{"is_leaf": true}]}`},
		{"importance width", `{"model_type": "decision_tree", "feature_names": ["a", "b"], "feature_importances": [1], "tree": [{"is_leaf": true}]}`},
		{"mean width", `{"model_type": "decision_tree", "feature_names": ["a"], "feature_means": [1, 2], "tree": [{"is_leaf": true}]}`},
		{"empty tree", `{"model_type": "decision_tree", "feature_names": ["a"]}`},
		{"feature index", `{"model_type": "decision_tree", "feature_names": ["a"], "tree": [{"feature_idx": 3, "left_child": 1, "right_child": 2}, {"is_leaf": true}, {"is_leaf": true}]}`},
		{"child cycle", `{"model_type": "decision_tree", "feature_names": ["a"], "tree": [{"feature_idx": 0, "left_child": 0, "right_child": 1}, {"is_leaf": true}]}`},
		{"leaf probability", `{"model_type": "decision_tree", "feature_names": ["a"], "tree": [{"is_leaf": true, "probability": 1.5}]}`},
		{"coefficient width", `{"model_type": "logistic_regression", "feature_names": ["a", "b"], "coefficients": [1]}`},
		{"threshold range", `{"model_type": "logistic_regression", "feature_names": ["a"], "coefficients": [1], "threshold": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("model.json", []byte(tt.payload))
			assert.ErrorIs(t, err, domain.ErrArtifactMissing)
		})
	}
}

func TestClassifier_RejectsWrongWidth(t *testing.T) {
	classifier, err := Decode("model.json", []byte(treeJSON))
	require.NoError(t, err)

	_, err = classifier.Predict([]float64{1})
	assert.Error(t, err)
}

func TestClassifier_ReturnsCopies(t *testing.T) {
	classifier, err := Decode("model.json", []byte(treeJSON))
	require.NoError(t, err)

	names := classifier.FeatureNames()
	names[0] = "changed"
	classifier.CategoryEncodings()["contract"]["One year"] = 9

	assert.Equal(t, "tenure", classifier.FeatureNames()[0])
	assert.Equal(t, 1, classifier.CategoryEncodings()["contract"]["One year"])
}
