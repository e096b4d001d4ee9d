package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// GetComparisonResult scores two vectors and reports per-tier deltas and changed metrics.
// Without explicit tiers, every tier both vectors supply is compared.
func GetComparisonResult(ctx context.Context, cfg *contract.Config, before, after string) (schema.ComparisonResult, error) {
	beforeVuln, err := resolveVector(cfg, before)
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("invalid before vector: %w", err)
	}
	afterVuln, err := resolveVector(cfg, after)
	if err != nil {
		return schema.ComparisonResult{}, fmt.Errorf("invalid after vector: %w", err)
	}

	tiers := cfg.Tiers
	if len(tiers) == 0 {
		for _, tier := range schema.AllTiers {
			if beforeVuln.Has(tier) && afterVuln.Has(tier) {
				tiers = append(tiers, tier)
			}
		}
	}

	beforeEngine := cvss.NewEngineFor(beforeVuln, cvss.V210{})
	afterEngine := cvss.NewEngineFor(afterVuln, cvss.V210{})
	result := schema.ComparisonResult{
		Before:  beforeEngine.Vector(),
		After:   afterEngine.Vector(),
		Details: make([]schema.ComparisonDetail, 0, len(tiers)),
		Changes: diffSelections(cfg.Catalog, beforeVuln, afterVuln),
	}

	for _, tier := range tiers {
		beforeScore, err := beforeEngine.Score(tier)
		if err != nil {
			return schema.ComparisonResult{}, fmt.Errorf("cannot score before vector: %w", err)
		}
		afterScore, err := afterEngine.Score(tier)
		if err != nil {
			return schema.ComparisonResult{}, fmt.Errorf("cannot score after vector: %w", err)
		}

		delta := cvss.Round1(afterScore - beforeScore)
		switch {
		case delta > 0:
			result.Summary.WorsenedTiers++
		case delta < 0:
			result.Summary.ImprovedTiers++
		}
		result.Details = append(result.Details, schema.ComparisonDetail{
			Tier:           tier,
			BeforeScore:    beforeScore,
			AfterScore:     afterScore,
			Delta:          delta,
			BeforeSeverity: schema.GetSeverity(beforeScore),
			AfterSeverity:  schema.GetSeverity(afterScore),
		})
	}
	result.Summary.ChangedMetrics = len(result.Changes)

	slog.DebugContext(ctx, "compared vectors", "before", result.Before, "after", result.After, "changed", result.Summary.ChangedMetrics)
	return result, nil
}

// diffSelections lists the metrics whose code differs, in catalog order.
// A metric of a tier only one side supplies counts as changed.
func diffSelections(cat *cvss.Catalog, before, after *cvss.Vulnerability) []schema.MetricChange {
	beforeSel := before.Selections()
	afterSel := after.Selections()

	changes := []schema.MetricChange{}
	for _, tier := range schema.AllTiers {
		for _, tmpl := range cat.Templates(tier) {
			b, a := beforeSel[tmpl.ShortName], afterSel[tmpl.ShortName]
			if b == a {
				continue
			}
			changes = append(changes, schema.MetricChange{
				ShortName: tmpl.ShortName,
				Name:      tmpl.Name,
				Before:    b,
				After:     a,
			})
		}
	}
	return changes
}
