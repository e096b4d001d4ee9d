package cvss

import (
	"errors"
	"math"
	"testing"

	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValue(t *testing.T, label, code string, weight float64) MetricValue {
	t.Helper()
	v, err := NewMetricValue(label, code, weight, label+" description")
	require.NoError(t, err)
	return v
}

func accessVectorOptions(t *testing.T) []MetricValue {
	return []MetricValue{
		mustValue(t, "Local", "L", 0.395),
		mustValue(t, "Adjacent Network", "A", 0.646),
		mustValue(t, "Network", "N", 1.0),
	}
}

func TestNewMetricValue(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		weight  float64
		wantErr bool
	}{
		{name: "regular", code: "N", weight: 1.0},
		{name: "zero weight", code: "N", weight: 0.0},
		{name: "empty code", code: "", weight: 1.0, wantErr: true},
		{name: "nan weight", code: "N", weight: math.NaN(), wantErr: true},
		{name: "infinite weight", code: "N", weight: math.Inf(1), wantErr: true},
		{name: "negative infinite weight", code: "N", weight: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewMetricValue("Network", tt.code, tt.weight, "Network access")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Network", v.Label())
			assert.Equal(t, tt.code, v.Code())
			assert.Equal(t, tt.weight, v.Weight())
			assert.Equal(t, tt.weight, v.Float64())
			assert.Equal(t, tt.code, v.String())
			assert.Equal(t, "Network access", v.Description())
		})
	}
}

func TestNewMetric(t *testing.T) {
	t.Run("defaults to first option", func(t *testing.T) {
		m, err := NewMetric("Access Vector", schema.AccessVector, accessVectorOptions(t), "")
		require.NoError(t, err)
		assert.Equal(t, "L", m.SelectedCode())
		assert.Equal(t, 0.395, m.Weight())
		assert.Equal(t, "L", m.Default().Code())
	})

	t.Run("initial code", func(t *testing.T) {
		m, err := NewMetric("Access Vector", schema.AccessVector, accessVectorOptions(t), "N")
		require.NoError(t, err)
		assert.Equal(t, "N", m.String())
		assert.Equal(t, "AV:N", m.VectorToken())
	})

	t.Run("unknown initial code", func(t *testing.T) {
		_, err := NewMetric("Access Vector", schema.AccessVector, accessVectorOptions(t), "X")
		assert.ErrorIs(t, err, ErrInvalidSelection)
	})

	t.Run("empty options", func(t *testing.T) {
		_, err := NewMetric("Access Vector", schema.AccessVector, nil, "")
		assert.ErrorIs(t, err, ErrEmptyOptionSet)
	})

	t.Run("duplicate codes", func(t *testing.T) {
		opts := append(accessVectorOptions(t), mustValue(t, "Nowhere", "N", 0.1))
		_, err := NewMetric("Access Vector", schema.AccessVector, opts, "")
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})
}

func TestMetricSelect(t *testing.T) {
	m, err := NewMetric("Access Vector", schema.AccessVector, accessVectorOptions(t), "A")
	require.NoError(t, err)

	for _, code := range m.Codes() {
		require.NoError(t, m.Select(code))
		assert.Equal(t, code, m.SelectedValue().Code())
	}

	require.NoError(t, m.Select("A"))
	err = m.Select("Z")
	require.Error(t, err)
	assert.Equal(t, "A", m.SelectedCode(), "failed select must not change the selection")

	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, "Access Vector", selErr.Metric)
	assert.Equal(t, schema.AccessVector, selErr.ShortName)
	assert.Equal(t, "Z", selErr.Code)
	assert.Equal(t, []string{"L", "A", "N"}, selErr.Valid)
	assert.Contains(t, err.Error(), "expected one of L, A, N")
}

func TestMetricOptionsAreCopies(t *testing.T) {
	opts := accessVectorOptions(t)
	m, err := NewMetric("Access Vector", schema.AccessVector, opts, "")
	require.NoError(t, err)

	opts[0] = mustValue(t, "Changed", "Q", 0.5)
	display := m.DisplayOptions()
	assert.Equal(t, "L", display[0].Code())

	display[1] = mustValue(t, "Changed", "Q", 0.5)
	assert.Equal(t, []string{"L", "A", "N"}, m.Codes())

	v, ok := m.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "Adjacent Network", v.Label())
	_, ok = m.Lookup("Q")
	assert.False(t, ok)
}

func TestMetricClone(t *testing.T) {
	m, err := NewMetric("Access Vector", schema.AccessVector, accessVectorOptions(t), "N")
	require.NoError(t, err)

	clone := m.Clone()
	require.NoError(t, clone.Select("L"))
	assert.Equal(t, "N", m.SelectedCode())
	assert.Equal(t, "L", clone.SelectedCode())
}
