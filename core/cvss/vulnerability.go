package cvss

import (
	"fmt"

	"github.com/huangsam/cvss2/schema"
)

// BaseMetrics holds the intrinsic metrics of a vulnerability.
type BaseMetrics struct {
	AV, AC, Au, C, I, A *Metric
}

// TemporalMetrics holds the metrics that change over time.
type TemporalMetrics struct {
	E, RL, RC *Metric
}

// EnvironmentalMetrics holds the metrics specific to a deployment.
type EnvironmentalMetrics struct {
	CDP, TD, CR, IR, AR *Metric
}

func (b *BaseMetrics) ordered() []*Metric { return []*Metric{b.AV, b.AC, b.Au, b.C, b.I, b.A} }

func (t *TemporalMetrics) ordered() []*Metric { return []*Metric{t.E, t.RL, t.RC} }

func (e *EnvironmentalMetrics) ordered() []*Metric { return []*Metric{e.CDP, e.TD, e.CR, e.IR, e.AR} }

// Vulnerability is one scoring request's set of live metrics, keyed by tier.
// A nil tier means the tier was not supplied.
type Vulnerability struct {
	Base          *BaseMetrics
	Temporal      *TemporalMetrics
	Environmental *EnvironmentalMetrics
}

// NewVulnerability groups metrics into tiers. Each supplied tier must be complete.
func NewVulnerability(cat *Catalog, metrics ...*Metric) (*Vulnerability, error) {
	byTier := make(map[schema.Tier]map[schema.ShortName]*Metric, len(schema.AllTiers))
	for _, m := range metrics {
		if m == nil {
			return nil, fmt.Errorf("%w: nil metric", ErrUnknownMetric)
		}
		short := m.ShortName()
		tier, ok := cat.TierOf(short)
		if !ok {
			return nil, unknownMetric(short)
		}
		if byTier[tier] == nil {
			byTier[tier] = make(map[schema.ShortName]*Metric)
		}
		if _, dup := byTier[tier][short]; dup {
			return nil, fmt.Errorf("%w: %s supplied more than once", ErrShortNameCollision, short)
		}
		byTier[tier][short] = m
	}

	v := &Vulnerability{}
	for tier, group := range byTier {
		var missing []schema.ShortName
		for _, short := range cat.ShortNames(tier) {
			if _, ok := group[short]; !ok {
				missing = append(missing, short)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("incomplete %s tier: %w", tier, unknownMetric(missing...))
		}
		v.setTier(tier, group)
	}
	return v, nil
}

// FromSelections builds a Vulnerability from a map of short name to code.
// Every code must name an option; an empty code is rejected like any other
// unknown one.
func FromSelections(cat *Catalog, selections map[schema.ShortName]string) (*Vulnerability, error) {
	metrics := make([]*Metric, 0, len(selections))
	for short, code := range selections {
		tmpl, ok := cat.Template(short)
		if !ok {
			return nil, unknownMetric(short)
		}
		m, err := tmpl.Instantiate("")
		if err != nil {
			return nil, err
		}
		if err := m.Select(code); err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return NewVulnerability(cat, metrics...)
}

func (v *Vulnerability) setTier(tier schema.Tier, g map[schema.ShortName]*Metric) {
	switch tier {
	case schema.BaseTier:
		v.Base = &BaseMetrics{
			AV: g[schema.AccessVector], AC: g[schema.AccessComplexity], Au: g[schema.Authentication],
			C: g[schema.ConfidentialityImpact], I: g[schema.IntegrityImpact], A: g[schema.AvailabilityImpact],
		}
	case schema.TemporalTier:
		v.Temporal = &TemporalMetrics{
			E: g[schema.Exploitability], RL: g[schema.RemediationLevel], RC: g[schema.ReportConfidence],
		}
	case schema.EnvironmentalTier:
		v.Environmental = &EnvironmentalMetrics{
			CDP: g[schema.CollateralDamagePotential], TD: g[schema.TargetDistribution],
			CR: g[schema.ConfidentialityRequirement], IR: g[schema.IntegrityRequirement], AR: g[schema.AvailabilityRequirement],
		}
	}
}

// Has reports whether a tier was supplied.
func (v *Vulnerability) Has(tier schema.Tier) bool {
	switch tier {
	case schema.BaseTier:
		return v.Base != nil
	case schema.TemporalTier:
		return v.Temporal != nil
	case schema.EnvironmentalTier:
		return v.Environmental != nil
	default:
		return false
	}
}

// Tiers returns the supplied tiers in scoring order.
func (v *Vulnerability) Tiers() []schema.Tier {
	var tiers []schema.Tier
	for _, t := range schema.AllTiers {
		if v.Has(t) {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Metrics returns the metrics of a tier in vector order.
func (v *Vulnerability) Metrics(tier schema.Tier) ([]*Metric, error) {
	switch {
	case tier == schema.BaseTier && v.Base != nil:
		return v.Base.ordered(), nil
	case tier == schema.TemporalTier && v.Temporal != nil:
		return v.Temporal.ordered(), nil
	case tier == schema.EnvironmentalTier && v.Environmental != nil:
		return v.Environmental.ordered(), nil
	default:
		return nil, fmt.Errorf("%w: %s tier not supplied", ErrUnknownMetric, tier)
	}
}

// Metric looks up a live metric by short name.
func (v *Vulnerability) Metric(short schema.ShortName) (*Metric, error) {
	for _, tier := range v.Tiers() {
		metrics, _ := v.Metrics(tier)
		for _, m := range metrics {
			if m.ShortName() == short {
				return m, nil
			}
		}
	}
	return nil, unknownMetric(short)
}

// Selections returns the selected code of every supplied metric.
func (v *Vulnerability) Selections() map[schema.ShortName]string {
	out := make(map[schema.ShortName]string)
	for _, tier := range v.Tiers() {
		metrics, _ := v.Metrics(tier)
		for _, m := range metrics {
			out[m.ShortName()] = m.SelectedCode()
		}
	}
	return out
}

// Clone returns a Vulnerability whose metrics can be selected independently.
func (v *Vulnerability) Clone() *Vulnerability {
	clone := &Vulnerability{}
	if v.Base != nil {
		b := *v.Base
		for _, p := range []**Metric{&b.AV, &b.AC, &b.Au, &b.C, &b.I, &b.A} {
			*p = (*p).Clone()
		}
		clone.Base = &b
	}
	if v.Temporal != nil {
		t := *v.Temporal
		for _, p := range []**Metric{&t.E, &t.RL, &t.RC} {
			*p = (*p).Clone()
		}
		clone.Temporal = &t
	}
	if v.Environmental != nil {
		e := *v.Environmental
		for _, p := range []**Metric{&e.CDP, &e.TD, &e.CR, &e.IR, &e.AR} {
			*p = (*p).Clone()
		}
		clone.Environmental = &e
	}
	return clone
}

// Complete fills every missing tier with default selections.
// Tiers already present are left untouched.
func (v *Vulnerability) Complete(cat *Catalog) error {
	for _, tier := range schema.AllTiers {
		if v.Has(tier) {
			continue
		}
		metrics, err := cat.instantiateDefaults(tier)
		if err != nil {
			return err
		}
		group := make(map[schema.ShortName]*Metric, len(metrics))
		for _, m := range metrics {
			group[m.ShortName()] = m
		}
		v.setTier(tier, group)
	}
	return nil
}
