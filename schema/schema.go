// Package schema has models and constants shared by every part of cvss2.
package schema

// MetricRow is one selected metric, as shown in a tier table.
type MetricRow struct {
	Name        string    `json:"name"`        // Long name, e.g. "Access Vector"
	ShortName   ShortName `json:"short_name"`  // Vector key, e.g. "AV"
	Label       string    `json:"label"`       // Selected option label, e.g. "Network"
	Code        string    `json:"code"`        // Selected option code, e.g. "N"
	Weight      float64   `json:"weight"`      // Weight used in the equations
	Description string    `json:"description"` // Selected option description
}

// FormulaValue is a named intermediate or final value of a tier's equations.
type FormulaValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TierReport has everything needed to display one scored tier.
type TierReport struct {
	Tier     Tier           `json:"tier"`
	Metrics  []MetricRow    `json:"metrics"`
	Formulas []FormulaValue `json:"formulas"`
	Score    float64        `json:"score"`
	Severity Severity       `json:"severity"`
	Vector   string         `json:"vector"`
}

// ScoreReport is the result of scoring one vulnerability.
type ScoreReport struct {
	Version      string        `json:"version"`
	Vector       string        `json:"vector"` // All supplied tiers, joined
	Tiers        []TierReport  `json:"tiers"`  // Requested tiers, in scoring order
	Verification *Verification `json:"verification,omitempty"`
}

// Verification holds the scores an independent implementation computed for the same vector.
type Verification struct {
	Source string           `json:"source"`
	Scores map[Tier]float64 `json:"scores"`
	Agrees bool             `json:"agrees"`
}

// TierReport returns the report of a tier, if it was requested.
func (r *ScoreReport) TierReport(tier Tier) (*TierReport, bool) {
	for i := range r.Tiers {
		if r.Tiers[i].Tier == tier {
			return &r.Tiers[i], true
		}
	}
	return nil, false
}
