package cvss

import (
	"fmt"
	"math"

	"github.com/huangsam/cvss2/schema"
)

// ScoreFormulas is the set of equations a CVSS version plugs into the Engine.
// Implementations return unrounded values; the Engine applies rounding.
type ScoreFormulas interface {
	Version() string
	Impact(v *Vulnerability) (float64, error)
	AdjustedImpact(v *Vulnerability) (float64, error)
	Exploitability(v *Vulnerability) (float64, error)
	BaseFcn(v *Vulnerability, impact float64) (float64, error)
	TemporalFcn(v *Vulnerability, score float64) (float64, error)
	EnvironmentalFcn(v *Vulnerability, adjustedTemporal float64) (float64, error)
}

// V210 implements the CVSS v2.10 equations.
type V210 struct{}

var _ ScoreFormulas = V210{}

// Constants of the v2.10 equations.
const (
	impactScale         = 10.41
	impactCeiling       = 10.0
	exploitabilityScale = 20.0
	impactBonus         = 1.176
	impactCoef          = 0.6
	exploitabilityCoef  = 0.4
	baseOffset          = 1.5
)

// Version returns "2.10".
func (V210) Version() string { return "2.10" }

// Impact = 10.41 * (1 - (1-C)(1-I)(1-A)).
func (V210) Impact(v *Vulnerability) (float64, error) {
	if v.Base == nil {
		return 0, missingTier(schema.BaseTier)
	}
	b := v.Base
	return impactScale * (1 - (1-b.C.Weight())*(1-b.I.Weight())*(1-b.A.Weight())), nil
}

// AdjustedImpact weighs each impact by its security requirement and caps the result at 10.
func (V210) AdjustedImpact(v *Vulnerability) (float64, error) {
	if v.Base == nil {
		return 0, missingTier(schema.BaseTier)
	}
	if v.Environmental == nil {
		return 0, missingTier(schema.EnvironmentalTier)
	}
	b, e := v.Base, v.Environmental
	raw := impactScale * (1 -
		(1-b.C.Weight()*e.CR.Weight())*
			(1-b.I.Weight()*e.IR.Weight())*
			(1-b.A.Weight()*e.AR.Weight()))
	return math.Min(impactCeiling, raw), nil
}

// Exploitability = 20 * AV * AC * Au.
func (V210) Exploitability(v *Vulnerability) (float64, error) {
	if v.Base == nil {
		return 0, missingTier(schema.BaseTier)
	}
	b := v.Base
	return exploitabilityScale * b.AV.Weight() * b.AC.Weight() * b.Au.Weight(), nil
}

// BaseFcn combines an impact value with exploitability. A zero impact yields zero.
func (f V210) BaseFcn(v *Vulnerability, impact float64) (float64, error) {
	expl, err := f.Exploitability(v)
	if err != nil {
		return 0, err
	}
	if impact == 0 {
		return 0, nil
	}
	return impactBonus * (impactCoef*impact + exploitabilityCoef*expl - baseOffset), nil
}

// TemporalFcn scales a score by E * RL * RC.
func (V210) TemporalFcn(v *Vulnerability, score float64) (float64, error) {
	if v.Temporal == nil {
		return 0, missingTier(schema.TemporalTier)
	}
	t := v.Temporal
	return score * t.E.Weight() * t.RL.Weight() * t.RC.Weight(), nil
}

// EnvironmentalFcn = (AT + (10 - AT) * CDP) * TD.
func (V210) EnvironmentalFcn(v *Vulnerability, adjustedTemporal float64) (float64, error) {
	if v.Environmental == nil {
		return 0, missingTier(schema.EnvironmentalTier)
	}
	e := v.Environmental
	return (adjustedTemporal + (10-adjustedTemporal)*e.CDP.Weight()) * e.TD.Weight(), nil
}

func missingTier(tier schema.Tier) error {
	return fmt.Errorf("%s tier not supplied: %w", tier, unknownMetric(schema.ShortNamesFor(tier)...))
}
