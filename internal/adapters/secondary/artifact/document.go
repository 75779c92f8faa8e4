package artifact

import (
	"errors"
	"fmt"
	"strings"

	ports "churn-insight-service/internal/core/ports/output"
)

const (
	ModelTypeDecisionTree       = "decision_tree"
	ModelTypeLogisticRegression = "logistic_regression"
)

// document is the on-disk artifact layout.
type document struct {
	ModelType          string                    `json:"model_type" yaml:"model_type"`
	Version            string                    `json:"version" yaml:"version"`
	FeatureNames       []string                  `json:"feature_names" yaml:"feature_names"`
	FeatureImportances []float64                 `json:"feature_importances,omitempty" yaml:"feature_importances,omitempty"`
	FeatureMeans       []float64                 `json:"feature_means,omitempty" yaml:"feature_means,omitempty"`
	CategoryEncodings  map[string]map[string]int `json:"category_encodings,omitempty" yaml:"category_encodings,omitempty"`

	// decision_tree
	Tree []TreeNode `json:"tree,omitempty" yaml:"tree,omitempty"`

	// logistic_regression
	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`
	Threshold    *float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

func (d *document) build() (ports.Classifier, error) {
	base, err := d.contract()
	if err != nil {
		return nil, err
	}

	switch d.ModelType {
	case ModelTypeDecisionTree:
		return newDecisionTree(base, d.Tree)
	case ModelTypeLogisticRegression:
		threshold := 0.5
		if d.Threshold != nil {
			threshold = *d.Threshold
		}
		return newLogisticRegression(base, d.Coefficients, d.Intercept, threshold)
	case "":
		return nil, errors.New("model_type is required")
	default:
		return nil, fmt.Errorf("unsupported model type %q", d.ModelType)
	}
}

func (d *document) contract() (contract, error) {
	if len(d.FeatureNames) == 0 {
		return contract{}, errors.New("feature_names is empty")
	}

	seen := make(map[string]bool, len(d.FeatureNames))
	for _, name := range d.FeatureNames {
		if strings.TrimSpace(name) == "" {
			return contract{}, errors.New("feature_names contains a blank name")
		}
		if seen[name] {
			return contract{}, fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = true
	}

	if n := len(d.FeatureImportances); n > 0 && n != len(d.FeatureNames) {
		return contract{}, fmt.Errorf("feature_importances has %d entries for %d features", n, len(d.FeatureNames))
	}
	if n := len(d.FeatureMeans); n > 0 && n != len(d.FeatureNames) {
		return contract{}, fmt.Errorf("feature_means has %d entries for %d features", n, len(d.FeatureNames))
	}

	return contract{
		names:       d.FeatureNames,
		importances: d.FeatureImportances,
		means:       d.FeatureMeans,
		encodings:   d.CategoryEncodings,
	}, nil
}

// contract carries the feature schema shared by every model type.
type contract struct {
	names       []string
	importances []float64
	means       []float64
	encodings   map[string]map[string]int
}

func (c contract) FeatureNames() []string {
	return append([]string(nil), c.names...)
}

func (c contract) FeatureImportances() ([]float64, bool) {
	if len(c.importances) == 0 {
		return nil, false
	}
	return append([]float64(nil), c.importances...), true
}

func (c contract) FeatureMeans() ([]float64, bool) {
	if len(c.means) == 0 {
		return nil, false
	}
	return append([]float64(nil), c.means...), true
}

func (c contract) CategoryEncodings() map[string]map[string]int {
	if len(c.encodings) == 0 {
		return nil
	}
	out := make(map[string]map[string]int, len(c.encodings))
	for col, mapping := range c.encodings {
		m := make(map[string]int, len(mapping))
		for k, v := range mapping {
			m[k] = v
		}
		out[col] = m
	}
	return out
}

func (c contract) checkWidth(vector []float64) error {
	if len(vector) != len(c.names) {
		return fmt.Errorf("expected %d features, got %d", len(c.names), len(vector))
	}
	return nil
}
