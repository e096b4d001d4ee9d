package cvss

import (
	"testing"

	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineFor(t *testing.T, vector string) *Engine {
	t.Helper()
	v, err := ParseVector(DefaultCatalog(), vector)
	require.NoError(t, err)
	return NewEngineFor(v, V210{})
}

func TestEngineNetworkCompleteCompromise(t *testing.T) {
	cat := DefaultCatalog()
	e, err := NewEngine(cat, instantiate(t, cat, "AV", "N", "AC", "L", "Au", "N", "C", "C", "I", "C", "A", "C")...)
	require.NoError(t, err)

	impact, err := e.Impact()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, impact, 0.001)

	expl, err := e.Exploitability()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, expl, 0.01)

	base, err := e.BaseScore()
	require.NoError(t, err)
	assert.Equal(t, 10.0, base)

	vector, err := e.BaseVector()
	require.NoError(t, err)
	assert.Equal(t, "AV:N/AC:L/Au:N/C:C/I:C/A:C", vector)
	assert.Equal(t, "2.10", e.Version())
}

func TestEngineNoImpact(t *testing.T) {
	e := engineFor(t, "AV:L/AC:H/Au:M/C:N/I:N/A:N")

	impact, err := e.Impact()
	require.NoError(t, err)
	assert.Equal(t, 0.0, impact)

	expl, err := e.Exploitability()
	require.NoError(t, err)
	assert.InDelta(t, 1.24425, expl, 1e-9)

	base, err := e.BaseScore()
	require.NoError(t, err)
	assert.Equal(t, 0.0, base)
}

func TestEngineZeroImpactIgnoresExploitability(t *testing.T) {
	for _, vector := range []string{
		"AV:N/AC:L/Au:N/C:N/I:N/A:N",
		"AV:A/AC:M/Au:S/C:N/I:N/A:N",
		"AV:L/AC:H/Au:M/C:N/I:N/A:N",
	} {
		base, err := engineFor(t, vector).BaseScore()
		require.NoError(t, err)
		assert.Equal(t, 0.0, base, vector)
	}
}

func TestEngineAllTiers(t *testing.T) {
	tests := []struct {
		name        string
		vector      string
		base        float64
		adjBase     float64
		temporal    float64
		adjTemporal float64
		env         float64
	}{
		{
			name:        "remote denial of service",
			vector:      "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H",
			base:        7.8,
			adjBase:     10.0,
			temporal:    6.4,
			adjTemporal: 8.3,
			env:         9.2,
		},
		{
			name:        "complete compromise with official fix",
			vector:      "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:M",
			base:        10.0,
			adjBase:     10.0,
			temporal:    8.3,
			adjTemporal: 8.3,
			env:         9.2,
		},
		{
			name:        "partial impacts",
			vector:      "AV:N/AC:L/Au:N/C:P/I:P/A:P/E:POC/RL:OF/RC:UC/CDP:LM/TD:M/CR:L/IR:M/AR:H",
			base:        7.5,
			adjBase:     7.6,
			temporal:    5.3,
			adjTemporal: 5.4,
			env:         5.1,
		},
		{
			name:        "adjacent partial confidentiality",
			vector:      "AV:A/AC:M/Au:S/C:P/I:N/A:N/E:U/RL:TF/RC:UR/CDP:L/TD:L/CR:H/IR:L/AR:L",
			base:        2.3,
			adjBase:     3.4,
			temporal:    1.7,
			adjTemporal: 2.5,
			env:         0.8,
		},
		{
			name:        "no targets",
			vector:      "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:H/RL:U/RC:C/CDP:H/TD:N/CR:H/IR:H/AR:H",
			base:        10.0,
			adjBase:     10.0,
			temporal:    10.0,
			adjTemporal: 10.0,
			env:         0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engineFor(t, tt.vector)
			check := func(want float64, fn func() (float64, error)) {
				t.Helper()
				got, err := fn()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			check(tt.base, e.BaseScore)
			check(tt.adjBase, e.AdjustedBaseScore)
			check(tt.temporal, e.TemporalScore)
			check(tt.adjTemporal, e.AdjustedTemporalScore)
			check(tt.env, e.EnvironmentalScore)
			assert.Equal(t, tt.vector, e.Vector())

			for _, tier := range schema.AllTiers {
				_, err := e.Score(tier)
				assert.NoError(t, err)
			}
		})
	}
}

func TestEngineAdjustedImpactCeiling(t *testing.T) {
	e := engineFor(t, "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:ND/RL:ND/RC:ND/CDP:ND/TD:ND/CR:H/IR:H/AR:H")

	raw := impactScale * (1 - (1-0.66*1.51)*(1-0.66*1.51)*(1-0.66*1.51))
	require.Greater(t, raw, 10.0)

	adj, err := e.AdjustedImpact()
	require.NoError(t, err)
	assert.Equal(t, 10.0, adj)
}

func TestEngineMissingTiers(t *testing.T) {
	e := engineFor(t, "AV:N/AC:L/Au:N/C:C/I:C/A:C")

	_, err := e.BaseScore()
	assert.NoError(t, err)

	_, err = e.TemporalScore()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = e.AdjustedImpact()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = e.EnvironmentalScore()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = e.TemporalVector()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = e.EnvironmentalMetrics()
	assert.ErrorIs(t, err, ErrUnknownMetric)

	_, err = e.Score(schema.BaseTier)
	assert.NoError(t, err)
	_, err = e.Score(schema.Tier("threat"))
	assert.ErrorIs(t, err, ErrUnknownMetric)

	empty := NewEngineFor(&Vulnerability{}, V210{})
	_, err = empty.BaseScore()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = empty.Exploitability()
	assert.ErrorIs(t, err, ErrUnknownMetric)
	assert.Equal(t, "", empty.Vector())
}

func TestEngineIsPure(t *testing.T) {
	e := engineFor(t, "AV:N/AC:M/Au:S/C:P/I:P/A:N/E:F/RL:W/RC:UR/CDP:MH/TD:M/CR:L/IR:H/AR:M")
	first, err := e.EnvironmentalScore()
	require.NoError(t, err)
	for range 5 {
		again, err := e.EnvironmentalScore()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEngineMetricAccessors(t *testing.T) {
	e := engineFor(t, "AV:N/AC:L/Au:N/C:C/I:C/A:C/E:F/RL:OF/RC:C/CDP:H/TD:H/CR:M/IR:M/AR:H")

	base, err := e.BaseMetrics()
	require.NoError(t, err)
	require.Len(t, base, 6)
	assert.Equal(t, "Access Vector", base[0].Name())
	assert.Equal(t, "Network", base[0].SelectedValue().Label())

	temporal, err := e.TemporalMetrics()
	require.NoError(t, err)
	assert.Len(t, temporal, 3)

	env, err := e.EnvironmentalMetrics()
	require.NoError(t, err)
	assert.Equal(t, schema.AvailabilityRequirement, env[4].ShortName())

	tv, err := e.TemporalVector()
	require.NoError(t, err)
	assert.Equal(t, "E:F/RL:OF/RC:C", tv)
	ev, err := e.EnvironmentalVector()
	require.NoError(t, err)
	assert.Equal(t, "CDP:H/TD:H/CR:M/IR:M/AR:H", ev)
}

// halfFormulas wraps V210 and halves every base value.
type halfFormulas struct{ V210 }

func (halfFormulas) Version() string { return "half" }

func (h halfFormulas) BaseFcn(v *Vulnerability, impact float64) (float64, error) {
	base, err := h.V210.BaseFcn(v, impact)
	return base / 2, err
}

func TestEngineCustomFormulas(t *testing.T) {
	v, err := ParseVector(DefaultCatalog(), "AV:N/AC:L/Au:N/C:C/I:C/A:C")
	require.NoError(t, err)

	e := NewEngineFor(v, halfFormulas{})
	base, err := e.BaseScore()
	require.NoError(t, err)
	assert.Equal(t, 5.0, base)
	assert.Equal(t, "half", e.Version())
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9.99509, 10.0},
		{6.44, 6.4},
		{6.46, 6.5},
		{0.25, 0.2},
		{0.75, 0.8},
		{0.35, 0.3},
		{2.675, 2.7},
		{0, 0},
		{-1.25, -1.2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round1(tt.in), "Round1(%v)", tt.in)
	}
}
