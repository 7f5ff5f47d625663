package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"alfredoptarigan/bias-aware-recruitment/internal/export"
	"alfredoptarigan/bias-aware-recruitment/internal/fairness"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/schemas"
	"alfredoptarigan/bias-aware-recruitment/internal/services"
)

func newFairnessCmd(root *rootOptions) *cobra.Command {
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "fairness <dataset.json>",
		Short: "Evaluate a prediction dataset for group disparities",
		Long:  "Validates the dataset against the fairness dataset schema, prints the fairness report as JSON and optionally exports it to Excel.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loadDataset(args[0])
			if err != nil {
				return err
			}

			components, log, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer components.Close()
			defer log.Sync()

			result, err := components.Fairness.Evaluate(cmd.Context(), *dataset)
			if err != nil {
				return fmt.Errorf("failed to evaluate fairness: %w", err)
			}

			return reportFairness(cmd, result, xlsxPath)
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the report as an Excel workbook to this path")

	return cmd
}

func loadDataset(path string) (*fairness.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	if err := schemas.ValidateFairnessDataset(string(content)); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}

	var dataset fairness.Dataset
	if err := json.Unmarshal(content, &dataset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset JSON: %w", err)
	}
	return &dataset, nil
}

func reportFairness(cmd *cobra.Command, result *services.FairnessResult, xlsxPath string) error {
	output, err := json.MarshalIndent(models.FairnessResponse{
		Report:  result.Report,
		AuditID: result.AuditID.String(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fairness report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))

	if xlsxPath != "" {
		path, err := export.ExportFairnessReport(result.Report, result.AuditID.String(), xlsxPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Workbook written to %s\n", path)
	}

	if flagged := services.FlaggedAttributes(result.Report); len(flagged) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Potential bias detected for: %v\n", flagged)
	}
	return nil
}
