package fairness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Dataset is a batch of predictions with parallel protected-attribute group
// assignments. Labels are optional ground truth aligned with Predictions.
type Dataset struct {
	Predictions         []float64               `json:"predictions"`
	ProtectedAttributes map[string][]GroupLabel `json:"protected_attributes"`
	Labels              []float64               `json:"labels,omitempty"`
}

// GroupLabel is a group value of a protected attribute. JSON strings, numbers
// and booleans are accepted and kept in their textual form.
type GroupLabel string

func (g *GroupLabel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("group label: empty value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("group label: %w", err)
		}
		*g = GroupLabel(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("group label: %w", err)
		}
		*g = GroupLabel(strconv.FormatBool(b))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("group label must be a string, number or boolean, got %s", data)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("group label: %w", err)
		}
		*g = GroupLabel(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return nil
}
