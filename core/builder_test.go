package core

import (
	"errors"
	"testing"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineFor(t *testing.T, vector string) *cvss.Engine {
	t.Helper()
	v, err := cvss.ParseVector(cvss.DefaultCatalog(), vector)
	require.NoError(t, err)
	return cvss.NewEngineFor(v, cvss.V210{})
}

func TestScoreReportBuilderFormulas(t *testing.T) {
	report, err := NewScoreReportBuilder(engineFor(t, nvdExample), schema.AllTiers).BuildTiers().Build()
	require.NoError(t, err)

	names := map[schema.Tier][]string{}
	for _, tr := range report.Tiers {
		for _, f := range tr.Formulas {
			names[tr.Tier] = append(names[tr.Tier], f.Name)
		}
	}
	assert.Equal(t, []string{"Impact", "Exploitability", "Base Score"}, names[schema.BaseTier])
	assert.Equal(t, []string{"Temporal Score"}, names[schema.TemporalTier])
	assert.Equal(t, []string{"Adjusted Impact", "Adjusted Base", "Adjusted Temporal", "Environmental Score"}, names[schema.EnvironmentalTier])
}

func TestScoreReportBuilderVerify(t *testing.T) {
	tests := []struct {
		name       string
		tiers      []schema.Tier
		wantVector string
		scores     map[schema.Tier]float64
		oracleErr  error
		wantAgrees bool
	}{
		{
			name:       "agreeing oracle",
			tiers:      []schema.Tier{schema.BaseTier, schema.TemporalTier},
			wantVector: "AV:N/AC:L/Au:N/C:N/I:N/A:C/E:F/RL:OF/RC:C",
			scores:     map[schema.Tier]float64{schema.BaseTier: 7.8, schema.TemporalTier: 6.5},
			wantAgrees: true,
		},
		{
			name:       "disagreeing oracle",
			tiers:      []schema.Tier{schema.BaseTier},
			wantVector: "AV:N/AC:L/Au:N/C:N/I:N/A:C",
			scores:     map[schema.Tier]float64{schema.BaseTier: 5.0},
			wantAgrees: false,
		},
		{
			name:       "oracle missing a tier",
			tiers:      []schema.Tier{schema.EnvironmentalTier},
			wantVector: nvdExample,
			scores:     map[schema.Tier]float64{},
			wantAgrees: false,
		},
		{
			name:       "oracle error",
			tiers:      []schema.Tier{schema.BaseTier},
			wantVector: "AV:N/AC:L/Au:N/C:N/I:N/A:C",
			oracleErr:  errors.New("unsupported"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &contract.MockOracleScorer{}
			oracle.On("Name").Return("mock")
			oracle.On("Scores", tt.wantVector, tt.tiers).Return(tt.scores, tt.oracleErr)

			report, err := NewScoreReportBuilder(engineFor(t, nvdExample), tt.tiers).
				WithOracle(oracle).
				BuildTiers().
				Verify().
				Build()
			oracle.AssertCalled(t, "Scores", tt.wantVector, tt.tiers)

			if tt.oracleErr != nil {
				assert.ErrorIs(t, err, tt.oracleErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, report.Verification)
			assert.Equal(t, "mock", report.Verification.Source)
			assert.Equal(t, tt.wantAgrees, report.Verification.Agrees)
		})
	}
}

func TestScoreReportBuilderStopsOnError(t *testing.T) {
	oracle := &contract.MockOracleScorer{}
	_, err := NewScoreReportBuilder(engineFor(t, fullCompromise), []schema.Tier{schema.TemporalTier}).
		WithOracle(oracle).
		BuildTiers().
		Verify().
		Build()
	assert.ErrorIs(t, err, cvss.ErrUnknownMetric)
	oracle.AssertNotCalled(t, "Scores")
}

func TestGoCVSSOracle(t *testing.T) {
	scores, err := GoCVSSOracle{}.Scores(nvdExample, schema.AllTiers)
	require.NoError(t, err)
	assert.InDelta(t, 7.8, scores[schema.BaseTier], verifyTolerance)
	assert.InDelta(t, 6.4, scores[schema.TemporalTier], verifyTolerance)
	assert.InDelta(t, 9.2, scores[schema.EnvironmentalTier], verifyTolerance)

	_, err = GoCVSSOracle{}.Scores("not a vector", schema.AllTiers)
	assert.Error(t, err)
}

func TestPrefixVector(t *testing.T) {
	v, err := cvss.ParseVector(cvss.DefaultCatalog(), "AV:N/AC:L/Au:N/C:C/I:C/A:C/CDP:H/TD:H/CR:M/IR:M/AR:M")
	require.NoError(t, err)

	got, err := prefixVector(v, []schema.Tier{schema.BaseTier})
	require.NoError(t, err)
	assert.Equal(t, fullCompromise, got)

	_, err = prefixVector(v, []schema.Tier{schema.EnvironmentalTier})
	assert.ErrorIs(t, err, cvss.ErrUnknownMetric)
}
