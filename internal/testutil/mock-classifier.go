package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	ports "churn-insight-service/internal/core/ports/output"
)

// MockClassifier is a mock of ports.Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) ModelType() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClassifier) FeatureNames() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockClassifier) FeatureImportances() ([]float64, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]float64), args.Bool(1)
}

func (m *MockClassifier) FeatureMeans() ([]float64, bool) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]float64), args.Bool(1)
}

func (m *MockClassifier) CategoryEncodings() map[string]map[string]int {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]map[string]int)
}

func (m *MockClassifier) Predict(vector []float64) (int, error) {
	args := m.Called(vector)
	return args.Int(0), args.Error(1)
}

// MockProbabilisticClassifier also implements ports.ProbabilityEstimator.
type MockProbabilisticClassifier struct {
	*MockClassifier
}

func (m MockProbabilisticClassifier) PredictProbability(vector []float64) (float64, error) {
	args := m.Called(vector)
	return args.Get(0).(float64), args.Error(1)
}

// MockArtifactLoader is a mock of ports.ArtifactLoader.
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Path() string {
	return "model.json"
}

func (m *MockArtifactLoader) Load(ctx context.Context) (ports.Classifier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Classifier), args.Error(1)
}

// NewClassifier returns a MockClassifier with the contract calls stubbed.
// Predict is left for the caller to set up.
func NewClassifier(names []string, importances []float64) *MockClassifier {
	c := new(MockClassifier)
	c.On("ModelType").Return("mock").Maybe()
	c.On("FeatureNames").Return(names).Maybe()
	if importances != nil {
		c.On("FeatureImportances").Return(importances, true).Maybe()
	} else {
		c.On("FeatureImportances").Return(nil, false).Maybe()
	}
	c.On("FeatureMeans").Return(nil, false).Maybe()
	c.On("CategoryEncodings").Return(nil).Maybe()
	return c
}
