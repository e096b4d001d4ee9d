package core

import (
	"slices"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/schema"
)

// tierFormulaText describes each tier's equation for the catalog listing.
var tierFormulaText = map[schema.Tier]string{
	schema.BaseTier: "BaseScore = round1(((0.6*Impact)+(0.4*Exploitability)-1.5)*f(Impact)), " +
		"Impact = 10.41*(1-(1-C)*(1-I)*(1-A)), Exploitability = 20*AV*AC*Au, f(Impact) = 0 if Impact = 0 else 1.176",
	schema.TemporalTier: "TemporalScore = round1(BaseScore*E*RL*RC)",
	schema.EnvironmentalTier: "EnvironmentalScore = round1((AdjustedTemporal+(10-AdjustedTemporal)*CDP)*TD), " +
		"AdjustedImpact = min(10, 10.41*(1-(1-C*CR)*(1-I*IR)*(1-A*AR)))",
}

// BuildMetricsRenderModel lists every tier, metric and option of a catalog.
func BuildMetricsRenderModel(cat *cvss.Catalog) *schema.MetricsRenderModel {
	tiers := make([]schema.CatalogTier, 0, len(schema.AllTiers))
	for _, tier := range schema.AllTiers {
		ct := schema.CatalogTier{Tier: tier, Formula: tierFormulaText[tier]}
		for _, tmpl := range cat.Templates(tier) {
			cm := schema.CatalogMetric{Name: tmpl.Name, ShortName: tmpl.ShortName}
			for i, opt := range tmpl.Options {
				cm.Options = append(cm.Options, schema.CatalogOption{
					Label:       opt.Label(),
					Code:        opt.Code(),
					Weight:      opt.Weight(),
					Description: opt.Description(),
					Default:     i == 0,
				})
			}
			ct.Metrics = append(ct.Metrics, cm)
		}
		tiers = append(tiers, ct)
	}

	return &schema.MetricsRenderModel{
		Title:       "CVSS v" + cat.Version() + " Metrics",
		Description: "Each vector element is SHORT:CODE; the first option of a metric is its default",
		Version:     cat.Version(),
		Tiers:       tiers,
		Severities:  slices.Clone(schema.SeverityBands),
	}
}
