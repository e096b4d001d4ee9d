package cvss

import (
	"fmt"
	"slices"

	"github.com/huangsam/cvss2/schema"
)

// Metric is a named, enumerated scoring input with exactly one selected value.
type Metric struct {
	name      string
	shortName schema.ShortName
	options   []MetricValue
	index     map[string]int
	selected  int
}

// NewMetric creates a Metric over an ordered option list.
// An empty initialCode selects the first option.
func NewMetric(name string, shortName schema.ShortName, options []MetricValue, initialCode string) (*Metric, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: metric %s (%s)", ErrEmptyOptionSet, name, shortName)
	}
	index := make(map[string]int, len(options))
	for i, opt := range options {
		if _, dup := index[opt.code]; dup {
			return nil, fmt.Errorf("%w: %q appears twice in metric %s (%s)", ErrDuplicateCode, opt.code, name, shortName)
		}
		index[opt.code] = i
	}

	m := &Metric{
		name:      name,
		shortName: shortName,
		options:   slices.Clone(options),
		index:     index,
	}
	if initialCode != "" {
		if err := m.Select(initialCode); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Name returns the long name, e.g. "Access Vector".
func (m *Metric) Name() string { return m.name }

// ShortName returns the vector key, e.g. "AV".
func (m *Metric) ShortName() schema.ShortName { return m.shortName }

// Select changes the selected value. An unknown code leaves the selection as it was.
func (m *Metric) Select(code string) error {
	i, ok := m.index[code]
	if !ok {
		return &SelectionError{
			Metric:    m.name,
			ShortName: m.shortName,
			Code:      code,
			Valid:     m.Codes(),
		}
	}
	m.selected = i
	return nil
}

// SelectedValue returns the MetricValue currently selected.
func (m *Metric) SelectedValue() MetricValue { return m.options[m.selected] }

// SelectedCode returns the code of the selected value.
func (m *Metric) SelectedCode() string { return m.options[m.selected].code }

// Weight returns the weight of the selected value.
func (m *Metric) Weight() float64 { return m.options[m.selected].weight }

// String returns the selected code.
func (m *Metric) String() string { return m.SelectedCode() }

// VectorToken returns "{shortName}:{code}".
func (m *Metric) VectorToken() string {
	return string(m.shortName) + ":" + m.SelectedCode()
}

// DisplayOptions returns every option in catalog order.
func (m *Metric) DisplayOptions() []MetricValue { return slices.Clone(m.options) }

// Lookup finds an option by code.
func (m *Metric) Lookup(code string) (MetricValue, bool) {
	i, ok := m.index[code]
	if !ok {
		return MetricValue{}, false
	}
	return m.options[i], true
}

// Codes returns the option codes in catalog order.
func (m *Metric) Codes() []string {
	codes := make([]string, len(m.options))
	for i, opt := range m.options {
		codes[i] = opt.code
	}
	return codes
}

// Default returns the first option.
func (m *Metric) Default() MetricValue { return m.options[0] }

// Clone returns a Metric sharing the options but with its own selection.
func (m *Metric) Clone() *Metric {
	clone := *m
	return &clone
}
