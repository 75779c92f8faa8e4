package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"churn-insight-service/internal/core/domain"
	ports "churn-insight-service/internal/core/ports/output"
)

const DefaultTopFactors = 3

type PredictionConfig struct {
	Policy     domain.SchemaPolicy
	Encoding   domain.EncodingStrategy
	TopFactors int
}

func DefaultPredictionConfig() PredictionConfig {
	return PredictionConfig{
		Policy:     domain.SchemaPolicyZeroFill,
		Encoding:   domain.EncodingArtifact,
		TopFactors: DefaultTopFactors,
	}
}

// PredictionRequest is one form submission. Choices carries the known
// categories of each categorical column, keyed by column name.
type PredictionRequest struct {
	Record  domain.RawRecord
	Choices map[string][]string
}

// PredictionService aligns a record with the model's feature contract and
// runs the model. The artifact is loaded on every call.
type PredictionService struct {
	loader ports.ArtifactLoader
	cfg    PredictionConfig
}

func NewPredictionService(loader ports.ArtifactLoader, cfg PredictionConfig) *PredictionService {
	if !cfg.Policy.Valid() {
		cfg.Policy = domain.SchemaPolicyZeroFill
	}
	if !cfg.Encoding.Valid() {
		cfg.Encoding = domain.EncodingArtifact
	}
	if cfg.TopFactors <= 0 {
		cfg.TopFactors = DefaultTopFactors
	}
	return &PredictionService{loader: loader, cfg: cfg}
}

func (s *PredictionService) Config() PredictionConfig {
	return s.cfg
}

func (s *PredictionService) Predict(ctx context.Context, req PredictionRequest) (*domain.PredictionResult, error) {
	if len(req.Record) == 0 {
		return nil, domain.ErrEmptyInput
	}

	classifier, err := s.loader.Load(ctx)
	if err != nil {
		log.WithError(err).WithField("path", s.loader.Path()).Warn("model artifact unavailable")
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrArtifactMissing) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrArtifactMissing, err)
	}

	contract := contractOf(classifier)

	encoded, warnings := EncodeRecord(req.Record, req.Choices, contract.Encodings, s.cfg.Encoding)
	vector, err := Align(encoded, contract, s.cfg.Policy)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, alignmentWarnings(vector, contract, s.cfg.Policy)...)

	values := vector.Values()
	label, err := classifier.Predict(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPredictionFailed, err)
	}

	result := &domain.PredictionResult{
		ID:         uuid.New(),
		CreatedAt:  time.Now(),
		ModelType:  classifier.ModelType(),
		Label:      label,
		Outcome:    domain.OutcomeFor(label),
		TopFactors: TopFactors(contract, s.cfg.TopFactors),
		Advice:     AdviceFor(label),
		Aligned:    vector,
		Warnings:   warnings,
	}

	if estimator, ok := classifier.(ports.ProbabilityEstimator); ok {
		if p, err := estimator.PredictProbability(values); err == nil {
			result.Probability = &p
		} else {
			log.WithError(err).Debug("probability estimate unavailable")
		}
	}

	log.WithFields(log.Fields{
		"prediction_id":    result.ID,
		"model_type":       result.ModelType,
		"label":            result.Label,
		"missing_features": len(vector.MissingFeatures),
		"dropped_columns":  len(vector.DroppedColumns),
	}).Info("prediction completed")

	return result, nil
}

// PredictFromDataset predicts for one row of an uploaded dataset, or for the
// form defaults when row is nil.
func (s *PredictionService) PredictFromDataset(ctx context.Context, ds *domain.Dataset, row *int) (*domain.PredictionResult, error) {
	if ds == nil || ds.RowCount() == 0 {
		return nil, domain.ErrEmptyInput
	}

	var record domain.RawRecord
	if row != nil {
		r, err := RecordFromRow(ds, *row)
		if err != nil {
			return nil, err
		}
		record = r
	} else {
		record = DefaultRecord(DeriveForm(ds))
	}

	return s.Predict(ctx, PredictionRequest{Record: record, Choices: Choices(ds)})
}

func contractOf(c ports.Classifier) domain.FeatureContract {
	contract := domain.FeatureContract{
		Names:     c.FeatureNames(),
		Encodings: c.CategoryEncodings(),
	}
	if importances, ok := c.FeatureImportances(); ok {
		contract.Importances = importances
	}
	if means, ok := c.FeatureMeans(); ok {
		contract.Means = means
	}
	return contract
}
