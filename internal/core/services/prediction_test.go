package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"churn-insight-service/internal/core/domain"
	"churn-insight-service/internal/testutil"
)

func newPredictionSvc(loader *testutil.MockArtifactLoader, policy domain.SchemaPolicy) *PredictionService {
	return NewPredictionService(loader, PredictionConfig{
		Policy:     policy,
		Encoding:   domain.EncodingArtifact,
		TopFactors: DefaultTopFactors,
	})
}

func TestPredict_ExampleScenario(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"age", "plan_code"}, []float64{0.7, 0.3})
	classifier.On("Predict", []float64{34, 0}).Return(1, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	svc := newPredictionSvc(loader, domain.SchemaPolicyZeroFill)
	result, err := svc.Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(34), "city": domain.Text("NY")},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Label)
	assert.Equal(t, domain.OutcomeChurn, result.Outcome)
	assert.Equal(t, domain.RiskHigh, result.Advice.Risk)
	assert.Equal(t, "High Churn Risk Detected", result.Advice.Headline)
	assert.Equal(t, []string{"plan_code"}, result.Aligned.MissingFeatures)
	assert.Equal(t, []string{"city"}, result.Aligned.DroppedColumns)
	assert.Equal(t, []domain.Factor{{Feature: "age", Importance: 0.7}, {Feature: "plan_code", Importance: 0.3}}, result.TopFactors)
	assert.Len(t, result.Warnings, 2)
	assert.Nil(t, result.Probability)
	assert.NotEqual(t, "", result.ID.String())
	classifier.AssertExpectations(t)
	loader.AssertExpectations(t)
}

func TestPredict_StayLabel(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"tenure"}, nil)
	classifier.On("Predict", []float64{48}).Return(0, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	result, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"tenure": domain.Numeric(48)},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeStay, result.Outcome)
	assert.Equal(t, domain.RiskLow, result.Advice.Risk)
	assert.Equal(t, "Customer Likely to Stay", result.Advice.Headline)
	assert.Nil(t, result.TopFactors)
	assert.Empty(t, result.Warnings)
}

func TestPredict_OtherLabelsAreNotChurn(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"tenure"}, nil)
	classifier.On("Predict", mock.Anything).Return(2, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	result, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"tenure": domain.Numeric(3)},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Label)
	assert.Equal(t, domain.OutcomeStay, result.Outcome)
}

func TestPredict_EmptyRecordSkipsArtifact(t *testing.T) {
	loader := new(testutil.MockArtifactLoader)

	_, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{})

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	loader.AssertNotCalled(t, "Load", mock.Anything)
}

func TestPredict_ArtifactMissing(t *testing.T) {
	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(nil, errors.New("open model.json: no such file"))

	_, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(1)},
	})

	assert.ErrorIs(t, err, domain.ErrArtifactMissing)
}

func TestPredict_ArtifactErrorPassesThrough(t *testing.T) {
	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(nil, domain.ErrArtifactMissing)

	_, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(1)},
	})

	assert.Equal(t, domain.ErrArtifactMissing, err)
}

func TestPredict_FailFastPolicy(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"age", "plan_code"}, nil)
	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	_, err := newPredictionSvc(loader, domain.SchemaPolicyFailFast).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(34)},
	})

	assert.ErrorIs(t, err, domain.ErrSchemaMismatch)
	classifier.AssertNotCalled(t, "Predict", mock.Anything)
}

func TestPredict_ClassifierFailure(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"age"}, nil)
	classifier.On("Predict", mock.Anything).Return(0, errors.New("bad width"))

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	_, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(34)},
	})

	assert.ErrorIs(t, err, domain.ErrPredictionFailed)
}

func TestPredict_Probability(t *testing.T) {
	base := testutil.NewClassifier([]string{"age"}, nil)
	base.On("Predict", []float64{60}).Return(1, nil)
	base.On("PredictProbability", []float64{60}).Return(0.83, nil)
	classifier := testutil.MockProbabilisticClassifier{MockClassifier: base}

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	result, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"age": domain.Numeric(60)},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Probability)
	assert.InDelta(t, 0.83, *result.Probability, 1e-9)
}

func TestPredict_UnseenCategoryWarns(t *testing.T) {
	classifier := new(testutil.MockClassifier)
	classifier.On("ModelType").Return("mock")
	classifier.On("FeatureNames").Return([]string{"contract"})
	classifier.On("FeatureImportances").Return(nil, false)
	classifier.On("FeatureMeans").Return(nil, false)
	classifier.On("CategoryEncodings").Return(map[string]map[string]int{"contract": {"One year": 1}})
	classifier.On("Predict", []float64{-1}).Return(0, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	result, err := newPredictionSvc(loader, domain.SchemaPolicyZeroFill).Predict(context.Background(), PredictionRequest{
		Record: domain.RawRecord{"contract": domain.Text("Weekly")},
	})

	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.True(t, strings.Contains(result.Warnings[0], "Weekly"))
}

func TestPredict_ArtifactReloadedEachCall(t *testing.T) {
	first := testutil.NewClassifier([]string{"age"}, nil)
	first.On("Predict", mock.Anything).Return(0, nil)
	second := testutil.NewClassifier([]string{"age"}, nil)
	second.On("Predict", mock.Anything).Return(1, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(first, nil).Once()
	loader.On("Load", mock.Anything).Return(second, nil).Once()

	svc := newPredictionSvc(loader, domain.SchemaPolicyZeroFill)
	req := PredictionRequest{Record: domain.RawRecord{"age": domain.Numeric(20)}}

	r1, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)
	r2, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0, r1.Label)
	assert.Equal(t, 1, r2.Label)
	loader.AssertNumberOfCalls(t, "Load", 2)
}

func TestPredictFromDataset_DefaultsAndRow(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("tenure,plan\n10,Basic\n30,Premium\n"))
	require.NoError(t, err)

	classifier := testutil.NewClassifier([]string{"tenure", "plan"}, nil)
	// Defaults: tenure mean 20, plan first choice "Basic" (code 0 of Basic, Premium).
	classifier.On("Predict", []float64{20, 0}).Return(0, nil)
	// Row 1: tenure 30, plan "Premium" (code 1).
	classifier.On("Predict", []float64{30, 1}).Return(1, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	svc := NewPredictionService(loader, PredictionConfig{Policy: domain.SchemaPolicyZeroFill, Encoding: domain.EncodingEnumerate})

	result, err := svc.PredictFromDataset(context.Background(), ds, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Label)

	row := 1
	result, err = svc.PredictFromDataset(context.Background(), ds, &row)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Label)

	row = 5
	_, err = svc.PredictFromDataset(context.Background(), ds, &row)
	assert.ErrorIs(t, err, domain.ErrRowOutOfRange)
}

func TestNewPredictionService_NormalizesConfig(t *testing.T) {
	svc := NewPredictionService(new(testutil.MockArtifactLoader), PredictionConfig{Policy: "bogus", Encoding: "bogus"})
	assert.Equal(t, DefaultPredictionConfig(), svc.Config())
}

func TestAdviceFor_ReturnsCopy(t *testing.T) {
	a := AdviceFor(1)
	a.Strategies[0] = "changed"
	assert.Equal(t, "Offer personalized discounts or loyalty rewards", AdviceFor(1).Strategies[0])
	assert.Len(t, AdviceFor(0).Strategies, 4)
	assert.Empty(t, AdviceFor(0).Message)
}

func TestPredict_Idempotent(t *testing.T) {
	classifier := testutil.NewClassifier([]string{"a", "b", "c"}, []float64{0.2, 0.5, 0.3})
	classifier.On("Predict", []float64{1, 0, 0}).Return(1, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	svc := NewPredictionService(loader, PredictionConfig{Policy: domain.SchemaPolicyZeroFill, Encoding: domain.EncodingEnumerate})
	req := PredictionRequest{
		Record:  domain.RawRecord{"a": domain.Text("x"), "y": domain.Text("q"), "z": domain.Numeric(1)},
		Choices: map[string][]string{"a": {"x", "w"}, "y": {"q"}},
	}

	first, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Label, second.Label)
	assert.Equal(t, first.Outcome, second.Outcome)
	assert.Equal(t, first.TopFactors, second.TopFactors)
	assert.Equal(t, first.Aligned, second.Aligned)
	assert.Equal(t, first.Warnings, second.Warnings)
	assert.Equal(t, first.Advice, second.Advice)
	assert.NotEqual(t, first.ID, second.ID)

	assert.Equal(t, []string{"b", "c"}, first.Aligned.MissingFeatures)
	assert.Equal(t, []string{"y", "z"}, first.Aligned.DroppedColumns)
}

func TestPredictFromDataset_EmptyCategoricalUsesPolicy(t *testing.T) {
	ds, err := ParseDataset(strings.NewReader("tenure,notes\n10,\n30,NA\n"))
	require.NoError(t, err)

	classifier := new(testutil.MockClassifier)
	classifier.On("ModelType").Return("mock")
	classifier.On("FeatureNames").Return([]string{"tenure", "notes"})
	classifier.On("FeatureImportances").Return(nil, false)
	classifier.On("FeatureMeans").Return([]float64{25, 7}, true)
	classifier.On("CategoryEncodings").Return(nil)
	classifier.On("Predict", []float64{20, 7}).Return(0, nil)

	loader := new(testutil.MockArtifactLoader)
	loader.On("Load", mock.Anything).Return(classifier, nil)

	svc := NewPredictionService(loader, PredictionConfig{Policy: domain.SchemaPolicyImputeMean, Encoding: domain.EncodingArtifact})
	result, err := svc.PredictFromDataset(context.Background(), ds, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"notes"}, result.Aligned.MissingFeatures)
	classifier.AssertExpectations(t)
}
