// Package export renders fairness reports and batch assessments as Excel
// workbooks.
package export

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"alfredoptarigan/bias-aware-recruitment/internal/fairness"
)

const (
	SummarySheet           = "Summary"
	DemographicParitySheet = "Demographic Parity"
	BiasAnalysisSheet      = "Bias Analysis"
	OutcomeRatesSheet      = "Outcome Rates"
	CandidatesSheet        = "Ranked Candidates"

	headerColor = "4472C4"
	flagColor   = "FFC7CE"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CandidateRow is one line of a batch scoring export. Error is set when the
// file could not be scored.
type CandidateRow struct {
	Filename           string
	TargetRole         string
	CompanyCulture     string
	StructuredBy       string
	OverallScore       float64
	SuccessProbability float64
	Sentiment          string
	BiasIndicators     int
	Error              string
}

// WriteFairnessReport writes the report workbook to w.
func WriteFairnessReport(w io.Writer, report *fairness.Report, auditID string) error {
	f, err := buildFairnessWorkbook(report, auditID)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportFairnessReport saves the report workbook to outputPath, adding the
// .xlsx extension when it is missing. It returns the final path.
func ExportFairnessReport(report *fairness.Report, auditID, outputPath string) (string, error) {
	f, err := buildFairnessWorkbook(report, auditID)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return save(f, outputPath)
}

// ExportCandidates saves a ranked batch scoring workbook to outputPath.
func ExportCandidates(rows []CandidateRow, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CandidatesSheet); err != nil {
		return "", fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := createCandidatesSheet(f, rows); err != nil {
		return "", fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	return save(f, outputPath)
}

func buildFairnessWorkbook(report *fairness.Report, auditID string) (*excelize.File, error) {
	if report == nil {
		return nil, fmt.Errorf("no fairness report to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	steps := []struct {
		sheet string
		fill  func(*excelize.File, *fairness.Report) error
	}{
		{DemographicParitySheet, createParitySheet},
		{BiasAnalysisSheet, createBiasSheet},
		{OutcomeRatesSheet, createOutcomeSheet},
	}

	if err := createSummarySheet(f, report, auditID); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	for _, step := range steps {
		if _, err := f.NewSheet(step.sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add %s sheet: %w", step.sheet, err)
		}
		if err := step.fill(f, report); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create %s sheet: %w", step.sheet, err)
		}
	}

	return f, nil
}

func save(f *excelize.File, outputPath string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SaveAs(outputPath); err != nil {
		var buf bytes.Buffer
		if writeErr := f.Write(&buf); writeErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), buffer write also failed: %w", err, writeErr)
		}
		if fileErr := os.WriteFile(outputPath, buf.Bytes(), 0644); fileErr != nil {
			return "", fmt.Errorf("failed to save Excel file: direct save failed (%v), file write failed: %w", err, fileErr)
		}
	}

	return outputPath, nil
}

type styles struct {
	header int
	label  int
	flag   int
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return s, err
	}

	s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return s, err
	}

	s.flag, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{flagColor}, Pattern: 1},
	})
	return s, err
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func writeHeaders(f *excelize.File, sheet string, headerStyle int, headers ...string) error {
	for col, header := range headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell(name, 1), header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(name, 1), cell(name, 1), headerStyle); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func createSummarySheet(f *excelize.File, report *fairness.Report, auditID string) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}

	f.SetColWidth(SummarySheet, "A", "A", 28)
	f.SetColWidth(SummarySheet, "B", "B", 60)

	f.SetCellValue(SummarySheet, "A1", "Fairness Evaluation Report")
	f.SetCellStyle(SummarySheet, "A1", "B1", st.header)
	f.MergeCell(SummarySheet, "A1", "B1")

	flagged := 0
	for _, metric := range report.BiasAnalysis {
		if metric.PotentialBias {
			flagged++
		}
	}

	rows := [][2]any{
		{"Audit ID:", auditID},
		{"Generated:", time.Now().Format("2006-01-02 15:04:05")},
		{"Protected Attributes:", len(report.BiasAnalysis)},
		{"Attributes Flagged:", flagged},
		{"Bias Threshold:", fairness.BiasThreshold},
		{"Equal Opportunity:", outcomeSummary(report.EqualOpportunity)},
		{"Predictive Parity:", outcomeSummary(report.PredictiveParity)},
	}

	for i, r := range rows {
		row := i + 3
		f.SetCellValue(SummarySheet, cell("A", row), r[0])
		f.SetCellStyle(SummarySheet, cell("A", row), cell("A", row), st.label)
		f.SetCellValue(SummarySheet, cell("B", row), r[1])
	}

	return nil
}

func outcomeSummary(r fairness.OutcomeReport) string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Note != "":
		return r.Note
	}
	return fmt.Sprintf("computed for %d attribute(s)", len(r.ByAttribute))
}

func createParitySheet(f *excelize.File, report *fairness.Report) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	sheet := DemographicParitySheet

	f.SetColWidth(sheet, "A", "B", 20)
	f.SetColWidth(sheet, "C", "D", 16)
	f.SetColWidth(sheet, "E", "E", 50)
	if err := writeHeaders(f, sheet, st.header, "Attribute", "Group", "Selection Rate", "Disparity", "Error"); err != nil {
		return err
	}

	row := 2
	for _, attr := range fairness.SortedKeys(report.DemographicParity) {
		metric := report.DemographicParity[attr]
		if metric.Error != "" {
			f.SetCellValue(sheet, cell("A", row), attr)
			f.SetCellValue(sheet, cell("E", row), metric.Error)
			f.SetCellStyle(sheet, cell("A", row), cell("E", row), st.flag)
			row++
			continue
		}

		for _, group := range fairness.SortedKeys(metric.SelectionRates) {
			f.SetCellValue(sheet, cell("A", row), attr)
			f.SetCellValue(sheet, cell("B", row), group)
			f.SetCellValue(sheet, cell("C", row), metric.SelectionRates[group])
			f.SetCellValue(sheet, cell("D", row), metric.Disparity)
			row++
		}
	}

	return nil
}

func createBiasSheet(f *excelize.File, report *fairness.Report) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	sheet := BiasAnalysisSheet

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "C", 18)
	f.SetColWidth(sheet, "D", "D", 50)
	if err := writeHeaders(f, sheet, st.header, "Attribute", "Maximum Difference", "Potential Bias", "Error"); err != nil {
		return err
	}

	for i, attr := range fairness.SortedKeys(report.BiasAnalysis) {
		row := i + 2
		metric := report.BiasAnalysis[attr]
		f.SetCellValue(sheet, cell("A", row), attr)

		if metric.Error != "" {
			f.SetCellValue(sheet, cell("D", row), metric.Error)
			f.SetCellStyle(sheet, cell("A", row), cell("D", row), st.flag)
			continue
		}

		f.SetCellValue(sheet, cell("B", row), metric.MaximumDifference)
		f.SetCellValue(sheet, cell("C", row), yesNo(metric.PotentialBias))
		if metric.PotentialBias {
			f.SetCellStyle(sheet, cell("A", row), cell("C", row), st.flag)
		}
	}

	return nil
}

// createOutcomeSheet lists true positive rates and precision per group. Only
// datasets with labels produce rows.
func createOutcomeSheet(f *excelize.File, report *fairness.Report) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	sheet := OutcomeRatesSheet

	f.SetColWidth(sheet, "A", "B", 20)
	f.SetColWidth(sheet, "C", "D", 22)
	if err := writeHeaders(f, sheet, st.header, "Attribute", "Group", "True Positive Rate", "Positive Predictive Value"); err != nil {
		return err
	}

	if report.EqualOpportunity.Note != "" || report.EqualOpportunity.Error != "" {
		f.SetCellValue(sheet, "A2", outcomeSummary(report.EqualOpportunity))
		return nil
	}

	row := 2
	for _, attr := range fairness.SortedKeys(report.EqualOpportunity.ByAttribute) {
		tpr := report.EqualOpportunity.ByAttribute[attr]
		ppv := report.PredictiveParity.ByAttribute[attr]
		if tpr.Error != "" {
			f.SetCellValue(sheet, cell("A", row), attr)
			f.SetCellValue(sheet, cell("B", row), tpr.Error)
			f.SetCellStyle(sheet, cell("A", row), cell("D", row), st.flag)
			row++
			continue
		}

		groups := make(map[string]struct{})
		for g := range tpr.Rates {
			groups[g] = struct{}{}
		}
		for g := range ppv.Rates {
			groups[g] = struct{}{}
		}

		for _, group := range fairness.SortedKeys(groups) {
			f.SetCellValue(sheet, cell("A", row), attr)
			f.SetCellValue(sheet, cell("B", row), group)
			if rate, ok := tpr.Rates[group]; ok {
				f.SetCellValue(sheet, cell("C", row), rate)
			}
			if rate, ok := ppv.Rates[group]; ok {
				f.SetCellValue(sheet, cell("D", row), rate)
			}
			row++
		}
	}

	return nil
}

func createCandidatesSheet(f *excelize.File, rows []CandidateRow) error {
	st, err := newStyles(f)
	if err != nil {
		return err
	}
	sheet := CandidatesSheet

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "I", 18)
	f.SetColWidth(sheet, "J", "J", 50)
	headers := []string{
		"Rank", "File", "Overall Score", "Success Probability", "Sentiment",
		"Bias Indicators", "Target Role", "Company Culture", "Structured By", "Error",
	}
	if err := writeHeaders(f, sheet, st.header, headers...); err != nil {
		return err
	}

	for i, r := range rankCandidates(rows) {
		row := i + 2
		f.SetCellValue(sheet, cell("B", row), r.Filename)
		if r.Error != "" {
			f.SetCellValue(sheet, cell("J", row), r.Error)
			f.SetCellStyle(sheet, cell("A", row), cell("J", row), st.flag)
			continue
		}

		f.SetCellValue(sheet, cell("A", row), i+1)
		f.SetCellValue(sheet, cell("C", row), r.OverallScore)
		f.SetCellValue(sheet, cell("D", row), r.SuccessProbability)
		f.SetCellValue(sheet, cell("E", row), r.Sentiment)
		f.SetCellValue(sheet, cell("F", row), r.BiasIndicators)
		f.SetCellValue(sheet, cell("G", row), r.TargetRole)
		f.SetCellValue(sheet, cell("H", row), r.CompanyCulture)
		f.SetCellValue(sheet, cell("I", row), r.StructuredBy)
	}

	if len(rows) > 0 {
		f.AutoFilter(sheet, fmt.Sprintf("A1:J%d", len(rows)+1), []excelize.AutoFilterOptions{})
	}

	return nil
}

// rankCandidates orders scored rows by overall score, highest first, and
// moves failed rows to the end. The input is not modified.
func rankCandidates(rows []CandidateRow) []CandidateRow {
	ranked := make([]CandidateRow, len(rows))
	copy(ranked, rows)

	slices.SortStableFunc(ranked, func(a, b CandidateRow) int {
		if (a.Error == "") != (b.Error == "") {
			if a.Error == "" {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.OverallScore, a.OverallScore)
	})
	return ranked
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
