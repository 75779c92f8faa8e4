package main

import (
	"github.com/spf13/cobra"

	"churn-insight-service/internal/adapters/primary/http/dto"
	"churn-insight-service/internal/core/services"
)

func newProfileCmd() *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "profile <dataset.csv>",
		Short: "Show the columns, a preview and the derived input form of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(args[0])
			if err != nil {
				return err
			}

			svc := services.NewDatasetService(preview)
			return writeJSON(cmd.OutOrStdout(), dto.ToDatasetResponse(ds, svc.Preview(ds), svc.Form(ds), services.Choices(ds)))
		},
	}

	cmd.Flags().IntVar(&preview, "preview", services.DefaultPreviewRows, "number of preview rows")
	return cmd
}
