// Package fairness computes group-disparity statistics over a batch of
// predictions.
package fairness

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

const (
	// BiasThreshold is the group difference above which bias is flagged.
	BiasThreshold = 0.1
	// PositiveThreshold turns scores and labels into binary outcomes.
	PositiveThreshold = 0.5

	MissingInputMessage = "Missing predictions or protected attributes"

	EqualOpportunityNote = "Equal opportunity requires true labels, which are not available in this example"
	PredictiveParityNote = "Predictive parity requires true labels, which are not available in this example"
)

var ErrMissingInput = errors.New("missing predictions or protected attributes")

// ParityMetric holds per-group selection rates. A non-empty Error replaces
// the statistics in JSON.
type ParityMetric struct {
	SelectionRates map[string]float64 `json:"selection_rates"`
	Disparity      float64            `json:"disparity"`
	Error          string             `json:"-"`
}

func (m ParityMetric) MarshalJSON() ([]byte, error) {
	if m.Error != "" {
		return errorJSON(m.Error)
	}
	type plain ParityMetric
	return json.Marshal(plain(m))
}

type BiasMetric struct {
	AveragePredictions map[string]float64 `json:"average_predictions"`
	MaximumDifference  float64            `json:"maximum_difference"`
	PotentialBias      bool               `json:"potential_bias"`
	Error              string             `json:"-"`
}

func (m BiasMetric) MarshalJSON() ([]byte, error) {
	if m.Error != "" {
		return errorJSON(m.Error)
	}
	type plain BiasMetric
	return json.Marshal(plain(m))
}

// RateMetric is a per-group outcome rate with its max-min spread.
type RateMetric struct {
	Rates      map[string]float64 `json:"rates"`
	Difference float64            `json:"difference"`
	Error      string             `json:"-"`
}

func (m RateMetric) MarshalJSON() ([]byte, error) {
	if m.Error != "" {
		return errorJSON(m.Error)
	}
	type plain RateMetric
	return json.Marshal(plain(m))
}

// OutcomeReport is a label-dependent metric. Without labels it carries only
// Note; a dataset-wide failure carries only Error.
type OutcomeReport struct {
	Note        string
	Error       string
	ByAttribute map[string]RateMetric
}

func (r OutcomeReport) MarshalJSON() ([]byte, error) {
	switch {
	case r.Error != "":
		return errorJSON(r.Error)
	case r.Note != "":
		return json.Marshal(map[string]string{"note": r.Note})
	}
	if r.ByAttribute == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.ByAttribute)
}

type Report struct {
	DemographicParity map[string]ParityMetric `json:"demographic_parity"`
	EqualOpportunity  OutcomeReport           `json:"equal_opportunity"`
	PredictiveParity  OutcomeReport           `json:"predictive_parity"`
	BiasAnalysis      map[string]BiasMetric   `json:"bias_analysis"`
}

// Evaluate computes every metric for d. Attributes whose label sequence does
// not line up with the predictions get an error entry; the rest are still
// computed.
func Evaluate(d Dataset) (*Report, error) {
	if len(d.Predictions) == 0 || len(d.ProtectedAttributes) == 0 {
		return nil, ErrMissingInput
	}

	report := &Report{
		DemographicParity: make(map[string]ParityMetric, len(d.ProtectedAttributes)),
		BiasAnalysis:      make(map[string]BiasMetric, len(d.ProtectedAttributes)),
	}

	for attr, groups := range d.ProtectedAttributes {
		if err := checkLength(attr, groups, len(d.Predictions)); err != nil {
			report.DemographicParity[attr] = ParityMetric{Error: err.Error()}
			report.BiasAnalysis[attr] = BiasMetric{Error: err.Error()}
			continue
		}

		rates := groupMeans(d.Predictions, groups)
		diff := spread(rates)
		report.DemographicParity[attr] = ParityMetric{SelectionRates: rates, Disparity: diff}
		report.BiasAnalysis[attr] = BiasMetric{
			AveragePredictions: rates,
			MaximumDifference:  diff,
			PotentialBias:      diff > BiasThreshold,
		}
	}

	report.EqualOpportunity, report.PredictiveParity = outcomeMetrics(d)
	return report, nil
}

func outcomeMetrics(d Dataset) (OutcomeReport, OutcomeReport) {
	if len(d.Labels) == 0 {
		return OutcomeReport{Note: EqualOpportunityNote}, OutcomeReport{Note: PredictiveParityNote}
	}
	if len(d.Labels) != len(d.Predictions) {
		msg := fmt.Sprintf("labels has %d values, predictions has %d", len(d.Labels), len(d.Predictions))
		return OutcomeReport{Error: msg}, OutcomeReport{Error: msg}
	}

	opportunity := OutcomeReport{ByAttribute: make(map[string]RateMetric, len(d.ProtectedAttributes))}
	parity := OutcomeReport{ByAttribute: make(map[string]RateMetric, len(d.ProtectedAttributes))}

	for attr, groups := range d.ProtectedAttributes {
		if err := checkLength(attr, groups, len(d.Predictions)); err != nil {
			opportunity.ByAttribute[attr] = RateMetric{Error: err.Error()}
			parity.ByAttribute[attr] = RateMetric{Error: err.Error()}
			continue
		}

		tpr, ppv := confusionRates(d.Predictions, d.Labels, groups)
		opportunity.ByAttribute[attr] = RateMetric{Rates: tpr, Difference: spread(tpr)}
		parity.ByAttribute[attr] = RateMetric{Rates: ppv, Difference: spread(ppv)}
	}

	return opportunity, parity
}

func checkLength(attr string, groups []GroupLabel, want int) error {
	if len(groups) != want {
		return fmt.Errorf("attribute %q has %d values, predictions has %d", attr, len(groups), want)
	}
	return nil
}

// groupMeans is the mean prediction of every group observed in groups.
func groupMeans(predictions []float64, groups []GroupLabel) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, g := range groups {
		sums[string(g)] += predictions[i]
		counts[string(g)]++
	}

	means := make(map[string]float64, len(sums))
	for g, sum := range sums {
		means[g] = sum / float64(counts[g])
	}
	return means
}

type confusion struct {
	tp, fp, fn int
}

// confusionRates returns the true-positive rate and positive predictive value
// per group. Groups with an empty denominator are left out.
func confusionRates(predictions, labels []float64, groups []GroupLabel) (map[string]float64, map[string]float64) {
	counts := make(map[string]*confusion)
	for i, g := range groups {
		c, ok := counts[string(g)]
		if !ok {
			c = &confusion{}
			counts[string(g)] = c
		}

		predicted := predictions[i] >= PositiveThreshold
		actual := labels[i] >= PositiveThreshold
		switch {
		case predicted && actual:
			c.tp++
		case predicted:
			c.fp++
		case actual:
			c.fn++
		}
	}

	tpr := make(map[string]float64)
	ppv := make(map[string]float64)
	for g, c := range counts {
		if c.tp+c.fn > 0 {
			tpr[g] = float64(c.tp) / float64(c.tp+c.fn)
		}
		if c.tp+c.fp > 0 {
			ppv[g] = float64(c.tp) / float64(c.tp+c.fp)
		}
	}
	return tpr, ppv
}

// spread is max minus min over the values, 0 when there are none.
func spread(values map[string]float64) float64 {
	if len(values) == 0 {
		return 0
	}
	v := slices.Collect(maps.Values(values))
	return slices.Max(v) - slices.Min(v)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func errorJSON(msg string) ([]byte, error) {
	return json.Marshal(map[string]string{"error": msg})
}
