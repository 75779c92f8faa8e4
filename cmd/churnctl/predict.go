package main

import (
	"github.com/spf13/cobra"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/adapters/secondary/artifact"
	"churn-insight-service/internal/core/domain"
	"churn-insight-service/internal/core/services"
)

func newPredictCmd() *cobra.Command {
	var (
		datasetPath string
		modelPath   string
		policy      string
		encoding    string
		top         int
		row         int
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict churn for one row of a dataset (or its form defaults)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.SchemaPolicy(policy).Valid() {
				return domain.ErrInvalidSchemaPolicy
			}
			if !domain.EncodingStrategy(encoding).Valid() {
				return domain.ErrInvalidEncodingStrategy
			}

			ds, err := loadDataset(datasetPath)
			if err != nil {
				return err
			}

			svc := services.NewPredictionService(artifact.NewFileLoader(modelPath), services.PredictionConfig{
				Policy:     domain.SchemaPolicy(policy),
				Encoding:   domain.EncodingStrategy(encoding),
				TopFactors: top,
			})

			var rowIndex *int
			if cmd.Flags().Changed("row") {
				rowIndex = &row
			}

			result, err := svc.PredictFromDataset(cmd.Context(), ds, rowIndex)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToPredictionResponse(result))
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "CSV dataset to read the record from")
	cmd.Flags().StringVar(&modelPath, "model", artifact.DefaultPath, "model artifact path")
	cmd.Flags().StringVar(&policy, "policy", string(domain.SchemaPolicyZeroFill), "schema policy: zero_fill, fail_fast, impute_mean")
	cmd.Flags().StringVar(&encoding, "encoding", string(domain.EncodingArtifact), "categorical encoding: artifact, enumerate")
	cmd.Flags().IntVar(&top, "top", services.DefaultTopFactors, "number of contributing features to report")
	cmd.Flags().IntVar(&row, "row", 0, "dataset row to predict (defaults to the form defaults)")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
