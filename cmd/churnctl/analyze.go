package main

import (
	"github.com/spf13/cobra"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/services"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		column string
		bins   int
	)

	cmd := &cobra.Command{
		Use:   "analyze <dataset.csv>",
		Short: "Compute the churn distribution and a numeric histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}

			report, err := services.NewAnalyticsService(services.DefaultHistogramBins).Analyze(ds, column, bins)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToAnalyticsResponse(report))
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "numeric column for the histogram (defaults to the first numeric column)")
	cmd.Flags().IntVar(&bins, "bins", services.DefaultHistogramBins, "histogram bins")
	return cmd
}
