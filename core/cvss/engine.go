// Package cvss scores vulnerabilities with the CVSS v2.10 equations and
// encodes the scored state as vulnerability vectors.
package cvss

import (
	"fmt"
	"strings"

	"github.com/huangsam/cvss2/schema"
)

// Engine computes scores and vectors for one Vulnerability.
// It holds no state besides the Vulnerability, so repeated calls agree.
type Engine struct {
	vuln     *Vulnerability
	formulas ScoreFormulas
}

// NewEngine builds a Vulnerability from metrics and scores it with V210.
func NewEngine(cat *Catalog, metrics ...*Metric) (*Engine, error) {
	v, err := NewVulnerability(cat, metrics...)
	if err != nil {
		return nil, err
	}
	return NewEngineFor(v, V210{}), nil
}

// NewEngineFor scores an existing Vulnerability with the given formulas.
func NewEngineFor(v *Vulnerability, f ScoreFormulas) *Engine {
	return &Engine{vuln: v, formulas: f}
}

// Vulnerability returns the scored metrics.
func (e *Engine) Vulnerability() *Vulnerability { return e.vuln }

// Version returns the CVSS version of the formulas.
func (e *Engine) Version() string { return e.formulas.Version() }

// Impact returns the unrounded impact subscore.
func (e *Engine) Impact() (float64, error) { return e.formulas.Impact(e.vuln) }

// AdjustedImpact returns the unrounded requirement-weighted impact.
func (e *Engine) AdjustedImpact() (float64, error) { return e.formulas.AdjustedImpact(e.vuln) }

// Exploitability returns the unrounded exploitability subscore.
func (e *Engine) Exploitability() (float64, error) { return e.formulas.Exploitability(e.vuln) }

// BaseScore returns the rounded base score.
func (e *Engine) BaseScore() (float64, error) {
	impact, err := e.Impact()
	if err != nil {
		return 0, err
	}
	return e.rounded(e.formulas.BaseFcn(e.vuln, impact))
}

// AdjustedBaseScore returns the base score recomputed with the adjusted impact.
func (e *Engine) AdjustedBaseScore() (float64, error) {
	impact, err := e.AdjustedImpact()
	if err != nil {
		return 0, err
	}
	return e.rounded(e.formulas.BaseFcn(e.vuln, impact))
}

// TemporalScore returns the rounded temporal score.
func (e *Engine) TemporalScore() (float64, error) {
	base, err := e.BaseScore()
	if err != nil {
		return 0, err
	}
	return e.rounded(e.formulas.TemporalFcn(e.vuln, base))
}

// AdjustedTemporalScore returns the temporal score built on the adjusted base score.
func (e *Engine) AdjustedTemporalScore() (float64, error) {
	base, err := e.AdjustedBaseScore()
	if err != nil {
		return 0, err
	}
	return e.rounded(e.formulas.TemporalFcn(e.vuln, base))
}

// EnvironmentalScore returns the rounded environmental score.
func (e *Engine) EnvironmentalScore() (float64, error) {
	at, err := e.AdjustedTemporalScore()
	if err != nil {
		return 0, err
	}
	return e.rounded(e.formulas.EnvironmentalFcn(e.vuln, at))
}

// Score returns the final score of a tier.
func (e *Engine) Score(tier schema.Tier) (float64, error) {
	switch tier {
	case schema.BaseTier:
		return e.BaseScore()
	case schema.TemporalTier:
		return e.TemporalScore()
	case schema.EnvironmentalTier:
		return e.EnvironmentalScore()
	default:
		return 0, fmt.Errorf("%w: no tier %q", ErrUnknownMetric, tier)
	}
}

func (e *Engine) rounded(x float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	return Round1(x), nil
}

// BaseVector returns e.g. "AV:N/AC:L/Au:N/C:C/I:C/A:C".
func (e *Engine) BaseVector() (string, error) { return FormatVector(e.vuln, schema.BaseTier) }

// TemporalVector returns e.g. "E:F/RL:OF/RC:C".
func (e *Engine) TemporalVector() (string, error) { return FormatVector(e.vuln, schema.TemporalTier) }

// EnvironmentalVector returns e.g. "CDP:N/TD:H/CR:M/IR:M/AR:M".
func (e *Engine) EnvironmentalVector() (string, error) {
	return FormatVector(e.vuln, schema.EnvironmentalTier)
}

// Vector joins the vectors of every supplied tier.
func (e *Engine) Vector() string {
	parts := make([]string, 0, len(schema.AllTiers))
	for _, tier := range e.vuln.Tiers() {
		s, _ := FormatVector(e.vuln, tier)
		parts = append(parts, s)
	}
	return strings.Join(parts, vectorSeparator)
}

// BaseMetrics returns the base metrics in vector order.
func (e *Engine) BaseMetrics() ([]*Metric, error) { return e.vuln.Metrics(schema.BaseTier) }

// TemporalMetrics returns the temporal metrics in vector order.
func (e *Engine) TemporalMetrics() ([]*Metric, error) { return e.vuln.Metrics(schema.TemporalTier) }

// EnvironmentalMetrics returns the environmental metrics in vector order.
func (e *Engine) EnvironmentalMetrics() ([]*Metric, error) {
	return e.vuln.Metrics(schema.EnvironmentalTier)
}
