package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"alfredoptarigan/bias-aware-recruitment/internal/export"
	"alfredoptarigan/bias-aware-recruitment/internal/models"
	"alfredoptarigan/bias-aware-recruitment/internal/predictor"
	"alfredoptarigan/bias-aware-recruitment/internal/services"
)

const (
	stdinArg  = "-"
	stdinName = "stdin"
)

type scoreOptions struct {
	role    string
	culture string
	workers int
	xlsx    string
}

func newScoreCmd(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score <resume.pdf>... | score -",
		Short: "Score one or more resume PDFs",
		Long:  "Extracts, structures and scores each resume, printing one JSON assessment per line followed by a summary on stderr. A single \"-\" reads one PDF from stdin.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			components, log, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer components.Close()
			defer log.Sync()

			upload := models.UploadOptions{TargetRole: opts.role, CompanyCulture: opts.culture}
			if err := components.Validate.Struct(upload); err != nil {
				return errors.New(models.ValidationMessage(err))
			}

			scoring := predictor.Options{
				TargetRole:     opts.role,
				CompanyCulture: opts.culture,
			}

			if len(args) == 1 && args[0] == stdinArg {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				assessment, err := components.Candidates.ScoreBytes(cmd.Context(), data, stdinName, scoring)
				return reportScores(cmd, []services.BatchResult{{Path: stdinName, Assessment: assessment, Err: err}}, opts.xlsx)
			}

			scorer := services.NewBatchScorer(components.Candidates, opts.workers, log)
			results := scorer.ScoreFiles(cmd.Context(), args, scoring)

			return reportScores(cmd, results, opts.xlsx)
		},
	}

	cmd.Flags().StringVarP(&opts.role, "role", "r", "", "Target role (defaults to DEFAULT_TARGET_ROLE)")
	cmd.Flags().StringVarP(&opts.culture, "culture", "c", "", "Company culture (defaults to DEFAULT_COMPANY_CULTURE)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 4, "Number of resumes scored concurrently")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also write a ranked Excel workbook to this path")

	return cmd
}

func reportScores(cmd *cobra.Command, results []services.BatchResult, xlsxPath string) error {
	out := cmd.OutOrStdout()
	encoder := json.NewEncoder(out)

	rows := make([]export.CandidateRow, 0, len(results))
	failed := 0

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", r.Path, r.Err)
			rows = append(rows, export.CandidateRow{Filename: r.Path, Error: r.Err.Error()})
			continue
		}

		if err := encoder.Encode(r.Assessment.Response()); err != nil {
			return fmt.Errorf("failed to write assessment: %w", err)
		}

		p := r.Assessment.Prediction
		rows = append(rows, export.CandidateRow{
			Filename:           r.Path,
			TargetRole:         p.TargetRole,
			CompanyCulture:     p.CompanyCulture,
			StructuredBy:       r.Assessment.Resume.StructuredBy,
			OverallScore:       p.OverallScore,
			SuccessProbability: p.SuccessProbability,
			Sentiment:          p.SentimentAnalysis.Sentiment,
			BiasIndicators:     len(p.SentimentAnalysis.BiasIndicators),
		})
	}

	if xlsxPath != "" {
		path, err := export.ExportCandidates(rows, xlsxPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Workbook written to %s\n", path)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Scored %d of %d resume(s)\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d resume(s) could not be scored", failed)
	}
	return nil
}
