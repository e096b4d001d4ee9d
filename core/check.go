package core

import (
	"context"
	"errors"
	"log/slog"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// ErrCheckFailed is returned when a tier score exceeds its threshold.
var ErrCheckFailed = errors.New("policy check failed")

// GetCheckResult scores a vector and gates every requested tier on its threshold.
// A tier fails when its score is strictly above the threshold.
func GetCheckResult(ctx context.Context, cfg *contract.Config, vector string) (*schema.CheckResult, error) {
	vuln, err := resolveVector(cfg, vector)
	if err != nil {
		return nil, err
	}
	tiers := resolveTiers(cfg, vuln)
	engine := cvss.NewEngineFor(vuln, cvss.V210{})

	result := &schema.CheckResult{
		Passed:       true,
		Vector:       engine.Vector(),
		CheckedTiers: tiers,
		Thresholds:   make(map[schema.Tier]float64, len(tiers)),
		Scores:       make(map[schema.Tier]float64, len(tiers)),
		Failures:     []schema.CheckFailure{},
	}
	for _, tier := range tiers {
		score, err := engine.Score(tier)
		if err != nil {
			return nil, err
		}
		threshold, ok := cfg.Thresholds[tier]
		if !ok {
			threshold = contract.DefaultThreshold
		}
		result.Scores[tier] = score
		result.Thresholds[tier] = threshold

		if score > threshold {
			result.Passed = false
			result.Failures = append(result.Failures, schema.CheckFailure{
				Tier:      tier,
				Score:     score,
				Threshold: threshold,
				Severity:  schema.GetSeverity(score),
			})
		}
	}

	slog.DebugContext(ctx, "checked vector", "vector", result.Vector, "passed", result.Passed, "failures", len(result.Failures))
	return result, nil
}
