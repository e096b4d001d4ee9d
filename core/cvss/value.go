package cvss

import (
	"errors"
	"fmt"
	"math"
)

// MetricValue is one enumerated option of a Metric. It cannot be changed once created.
type MetricValue struct {
	label       string
	code        string
	weight      float64
	description string
}

// NewMetricValue creates a MetricValue. The weight must be a finite number.
func NewMetricValue(label, code string, weight float64, description string) (MetricValue, error) {
	if code == "" {
		return MetricValue{}, errors.New("metric value code cannot be empty")
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return MetricValue{}, fmt.Errorf("metric value %s: weight must be finite, got %v", code, weight)
	}
	return MetricValue{label: label, code: code, weight: weight, description: description}, nil
}

// Label returns the display name, e.g. "Network".
func (v MetricValue) Label() string { return v.label }

// Code returns the short symbolic value used in vectors, e.g. "N".
func (v MetricValue) Code() string { return v.code }

// Weight returns the number used in the score formulas.
func (v MetricValue) Weight() float64 { return v.weight }

// Description returns the human readable explanation.
func (v MetricValue) Description() string { return v.description }

// String returns the code.
func (v MetricValue) String() string { return v.code }

// Float64 returns the weight.
func (v MetricValue) Float64() float64 { return v.weight }
