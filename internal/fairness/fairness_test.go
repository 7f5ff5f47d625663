package fairness

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(values ...string) []GroupLabel {
	out := make([]GroupLabel, len(values))
	for i, v := range values {
		out[i] = GroupLabel(v)
	}
	return out
}

func TestEvaluate_BinaryGenderScenario(t *testing.T) {
	report, err := Evaluate(Dataset{
		Predictions:         []float64{1, 0, 1, 0},
		ProtectedAttributes: map[string][]GroupLabel{"gender": labels("M", "F", "M", "F")},
	})
	require.NoError(t, err)

	parity := report.DemographicParity["gender"]
	assert.Equal(t, map[string]float64{"M": 1.0, "F": 0.0}, parity.SelectionRates)
	assert.Equal(t, 1.0, parity.Disparity)

	bias := report.BiasAnalysis["gender"]
	assert.Equal(t, map[string]float64{"M": 1.0, "F": 0.0}, bias.AveragePredictions)
	assert.Equal(t, 1.0, bias.MaximumDifference)
	assert.True(t, bias.PotentialBias)

	assert.Equal(t, EqualOpportunityNote, report.EqualOpportunity.Note)
	assert.Equal(t, PredictiveParityNote, report.PredictiveParity.Note)
}

func TestEvaluate_MissingInput(t *testing.T) {
	tests := []struct {
		name string
		data Dataset
	}{
		{name: "empty attributes", data: Dataset{Predictions: []float64{1, 0}, ProtectedAttributes: map[string][]GroupLabel{}}},
		{name: "nil attributes", data: Dataset{Predictions: []float64{1, 0}}},
		{name: "empty predictions", data: Dataset{ProtectedAttributes: map[string][]GroupLabel{"gender": labels("M")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Evaluate(tt.data)
			assert.ErrorIs(t, err, ErrMissingInput)
			assert.Nil(t, report)
		})
	}
}

func TestEvaluate_DisparityIsOrderIndependent(t *testing.T) {
	first, err := Evaluate(Dataset{
		Predictions:         []float64{0.9, 0.2, 0.4, 0.7},
		ProtectedAttributes: map[string][]GroupLabel{"group": labels("a", "b", "a", "b")},
	})
	require.NoError(t, err)

	swapped, err := Evaluate(Dataset{
		Predictions:         []float64{0.2, 0.9, 0.7, 0.4},
		ProtectedAttributes: map[string][]GroupLabel{"group": labels("b", "a", "b", "a")},
	})
	require.NoError(t, err)

	assert.InDelta(t, first.DemographicParity["group"].Disparity, swapped.DemographicParity["group"].Disparity, 1e-12)
	assert.InDelta(t, first.BiasAnalysis["group"].MaximumDifference, swapped.BiasAnalysis["group"].MaximumDifference, 1e-12)
}

func TestEvaluate_PotentialBiasThreshold(t *testing.T) {
	tests := []struct {
		name        string
		predictions []float64
		want        bool
	}{
		{name: "exactly at threshold", predictions: []float64{0.1, 0.0}, want: false},
		{name: "just above threshold", predictions: []float64{0.1000001, 0.0}, want: true},
		{name: "shifted just above", predictions: []float64{0.6000001, 0.5}, want: true},
		{name: "equal groups", predictions: []float64{0.5, 0.5}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Evaluate(Dataset{
				Predictions:         tt.predictions,
				ProtectedAttributes: map[string][]GroupLabel{"group": labels("x", "y")},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.BiasAnalysis["group"].PotentialBias)
		})
	}
}

func TestEvaluate_LengthMismatchIsLocalized(t *testing.T) {
	report, err := Evaluate(Dataset{
		Predictions: []float64{1, 0, 1, 0},
		ProtectedAttributes: map[string][]GroupLabel{
			"gender": labels("M", "F", "M", "F"),
			"age":    labels("young", "old", "young"),
		},
	})
	require.NoError(t, err)

	assert.Empty(t, report.DemographicParity["gender"].Error)
	assert.Equal(t, 1.0, report.DemographicParity["gender"].Disparity)

	assert.Contains(t, report.DemographicParity["age"].Error, `"age" has 3 values`)
	assert.NotEmpty(t, report.BiasAnalysis["age"].Error)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		DemographicParity map[string]map[string]any `json:"demographic_parity"`
		BiasAnalysis      map[string]map[string]any `json:"bias_analysis"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded.DemographicParity["age"], "error")
	assert.NotContains(t, decoded.DemographicParity["age"], "disparity")
	assert.Contains(t, decoded.BiasAnalysis["gender"], "potential_bias")
}

func TestEvaluate_WithLabels(t *testing.T) {
	report, err := Evaluate(Dataset{
		Predictions:         []float64{1, 0, 1, 1},
		Labels:              []float64{1, 1, 1, 0},
		ProtectedAttributes: map[string][]GroupLabel{"gender": labels("M", "M", "F", "F")},
	})
	require.NoError(t, err)

	opportunity := report.EqualOpportunity.ByAttribute["gender"]
	assert.Equal(t, map[string]float64{"M": 0.5, "F": 1.0}, opportunity.Rates)
	assert.Equal(t, 0.5, opportunity.Difference)

	parity := report.PredictiveParity.ByAttribute["gender"]
	assert.Equal(t, map[string]float64{"M": 1.0, "F": 0.5}, parity.Rates)
	assert.Equal(t, 0.5, parity.Difference)

	assert.Empty(t, report.EqualOpportunity.Note)
}

func TestEvaluate_LabelsLengthMismatch(t *testing.T) {
	report, err := Evaluate(Dataset{
		Predictions:         []float64{1, 0},
		Labels:              []float64{1},
		ProtectedAttributes: map[string][]GroupLabel{"gender": labels("M", "F")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, report.EqualOpportunity.Error)
	assert.NotEmpty(t, report.PredictiveParity.Error)
	assert.Equal(t, 1.0, report.DemographicParity["gender"].Disparity)
}

func TestReportJSON_Notes(t *testing.T) {
	report, err := Evaluate(Dataset{
		Predictions:         []float64{1, 0},
		ProtectedAttributes: map[string][]GroupLabel{"gender": labels("M", "F")},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `{"note":"`+EqualOpportunityNote+`"}`, string(decoded["equal_opportunity"]))
	assert.JSONEq(t, `{"note":"`+PredictiveParityNote+`"}`, string(decoded["predictive_parity"]))
	assert.JSONEq(t, `{"gender":{"selection_rates":{"M":1,"F":0},"disparity":1}}`, string(decoded["demographic_parity"]))
}

func TestDataset_UnmarshalGroupLabels(t *testing.T) {
	var d Dataset
	err := json.Unmarshal([]byte(`{"predictions":[1,0,1],"protected_attributes":{"senior":[true,false,1]}}`), &d)
	require.NoError(t, err)
	assert.Equal(t, labels("true", "false", "1"), d.ProtectedAttributes["senior"])

	report, err := Evaluate(d)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"true": 1, "false": 0, "1": 1}, report.DemographicParity["senior"].SelectionRates)

	for _, doc := range []string{
		`{"predictions":[1],"protected_attributes":{"g":[{"a":1}]}}`,
		`{"predictions":[1],"protected_attributes":{"g":[null]}}`,
	} {
		var bad Dataset
		assert.Error(t, json.Unmarshal([]byte(doc), &bad), doc)
	}
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
