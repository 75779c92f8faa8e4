package artifact

import (
	"errors"
	"fmt"
	"math"
)

type logisticRegression struct {
	contract
	coefficients []float64
	intercept    float64
	threshold    float64
}

func newLogisticRegression(c contract, coefficients []float64, intercept, threshold float64) (*logisticRegression, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("logistic regression has no coefficients")
	}
	if len(coefficients) != len(c.names) {
		return nil, fmt.Errorf("coefficients has %d entries for %d features", len(coefficients), len(c.names))
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold %v outside (0,1)", threshold)
	}
	return &logisticRegression{
		contract:     c,
		coefficients: coefficients,
		intercept:    intercept,
		threshold:    threshold,
	}, nil
}

func (lr *logisticRegression) ModelType() string {
	return ModelTypeLogisticRegression
}

func (lr *logisticRegression) Predict(vector []float64) (int, error) {
	p, err := lr.PredictProbability(vector)
	if err != nil {
		return 0, err
	}
	if p >= lr.threshold {
		return 1, nil
	}
	return 0, nil
}

func (lr *logisticRegression) PredictProbability(vector []float64) (float64, error) {
	if err := lr.checkWidth(vector); err != nil {
		return 0, err
	}
	z := lr.intercept
	for i, w := range lr.coefficients {
		z += w * vector[i]
	}
	return 1 / (1 + math.Exp(-z)), nil
}
