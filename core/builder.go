package core

import (
	"fmt"
	"math"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// verifyTolerance allows one rounding step of disagreement, since other
// implementations round ties away from zero.
const verifyTolerance = 0.1001

// ScoreReportBuilder builds the report of one scored vulnerability.
type ScoreReportBuilder struct {
	engine *cvss.Engine
	tiers  []schema.Tier
	oracle contract.OracleScorer
	report *schema.ScoreReport
	err    error
}

// NewScoreReportBuilder is the starting point for building a score report.
func NewScoreReportBuilder(engine *cvss.Engine, tiers []schema.Tier) *ScoreReportBuilder {
	return &ScoreReportBuilder{
		engine: engine,
		tiers:  tiers,
		report: &schema.ScoreReport{
			Version: engine.Version(),
			Vector:  engine.Vector(),
		},
	}
}

// WithOracle sets the independent scorer used by Verify.
func (b *ScoreReportBuilder) WithOracle(oracle contract.OracleScorer) *ScoreReportBuilder {
	b.oracle = oracle
	return b
}

// BuildTiers scores every requested tier and records its metrics and formula values.
func (b *ScoreReportBuilder) BuildTiers() *ScoreReportBuilder {
	if b.err != nil {
		return b
	}
	for _, tier := range b.tiers {
		tr, err := buildTierReport(b.engine, tier)
		if err != nil {
			b.err = fmt.Errorf("cannot score %s tier: %w", tier, err)
			return b
		}
		b.report.Tiers = append(b.report.Tiers, tr)
	}
	return b
}

// Verify compares the tier scores against the oracle, if one was set.
func (b *ScoreReportBuilder) Verify() *ScoreReportBuilder {
	if b.err != nil || b.oracle == nil {
		return b
	}
	vector, err := prefixVector(b.engine.Vulnerability(), b.tiers)
	if err != nil {
		b.err = err
		return b
	}
	scores, err := b.oracle.Scores(vector, b.tiers)
	if err != nil {
		b.err = fmt.Errorf("verification with %s failed: %w", b.oracle.Name(), err)
		return b
	}

	agrees := true
	for _, tr := range b.report.Tiers {
		other, ok := scores[tr.Tier]
		if !ok || math.Abs(other-tr.Score) > verifyTolerance {
			agrees = false
		}
	}
	b.report.Verification = &schema.Verification{
		Source: b.oracle.Name(),
		Scores: scores,
		Agrees: agrees,
	}
	return b
}

// Build returns the report, or the first error hit along the way.
func (b *ScoreReportBuilder) Build() (*schema.ScoreReport, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.report, nil
}

// BuildScoreReport scores the requested tiers of an engine.
// With cfg.Verify set, the scores are checked against go-cvss.
func BuildScoreReport(engine *cvss.Engine, tiers []schema.Tier, cfg *contract.Config) (*schema.ScoreReport, error) {
	b := NewScoreReportBuilder(engine, tiers)
	if cfg.Verify {
		b.WithOracle(GoCVSSOracle{})
	}
	return b.BuildTiers().Verify().Build()
}

// buildTierReport collects the rows, formula values and score of one tier.
func buildTierReport(engine *cvss.Engine, tier schema.Tier) (schema.TierReport, error) {
	metrics, err := engine.Vulnerability().Metrics(tier)
	if err != nil {
		return schema.TierReport{}, err
	}
	formulas, err := tierFormulas(engine, tier)
	if err != nil {
		return schema.TierReport{}, err
	}
	score, err := engine.Score(tier)
	if err != nil {
		return schema.TierReport{}, err
	}
	vector, err := cvss.FormatVector(engine.Vulnerability(), tier)
	if err != nil {
		return schema.TierReport{}, err
	}

	return schema.TierReport{
		Tier:     tier,
		Metrics:  metricRows(metrics),
		Formulas: formulas,
		Score:    score,
		Severity: schema.GetSeverity(score),
		Vector:   vector,
	}, nil
}

// metricRows flattens live metrics into table rows.
func metricRows(metrics []*cvss.Metric) []schema.MetricRow {
	rows := make([]schema.MetricRow, 0, len(metrics))
	for _, m := range metrics {
		v := m.SelectedValue()
		rows = append(rows, schema.MetricRow{
			Name:        m.Name(),
			ShortName:   m.ShortName(),
			Label:       v.Label(),
			Code:        v.Code(),
			Weight:      v.Weight(),
			Description: v.Description(),
		})
	}
	return rows
}

// formulaStep is a named value of a tier's equations.
type formulaStep struct {
	name string
	fn   func() (float64, error)
}

// tierFormulas evaluates the intermediate values shown under a tier's table.
func tierFormulas(engine *cvss.Engine, tier schema.Tier) ([]schema.FormulaValue, error) {
	var steps []formulaStep
	switch tier {
	case schema.BaseTier:
		steps = []formulaStep{
			{"Impact", engine.Impact},
			{"Exploitability", engine.Exploitability},
			{"Base Score", engine.BaseScore},
		}
	case schema.TemporalTier:
		steps = []formulaStep{
			{"Temporal Score", engine.TemporalScore},
		}
	case schema.EnvironmentalTier:
		steps = []formulaStep{
			{"Adjusted Impact", engine.AdjustedImpact},
			{"Adjusted Base", engine.AdjustedBaseScore},
			{"Adjusted Temporal", engine.AdjustedTemporalScore},
			{"Environmental Score", engine.EnvironmentalScore},
		}
	default:
		return nil, fmt.Errorf("unknown tier %q", tier)
	}

	values := make([]schema.FormulaValue, 0, len(steps))
	for _, step := range steps {
		v, err := step.fn()
		if err != nil {
			return nil, err
		}
		values = append(values, schema.FormulaValue{Name: step.name, Value: v})
	}
	return values, nil
}
