// Package core has the orchestration logic for scoring, checking, comparing and batch scoring vectors.
package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/huangsam/cvss2/core/cvss"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/internal/outwriter"
	"github.com/huangsam/cvss2/schema"
)

// ExecuteScore scores one vector and prints the report.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, vector string) error {
	report, err := GetScoreReport(ctx, cfg, vector)
	if err != nil {
		return err
	}
	return outwriter.PrintScoreReport(report, cfg)
}

// ExecuteInteractive lets the user pick metric values, then prints the report.
// It serves as the main entry point for the 'interactive' command.
func ExecuteInteractive(ctx context.Context, cfg *contract.Config, selector contract.MetricSelector) error {
	report, err := GetInteractiveReport(ctx, cfg, selector)
	if err != nil {
		return err
	}
	return outwriter.PrintScoreReport(report, cfg)
}

// ExecuteMetrics prints the metric catalog.
func ExecuteMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.PrintMetricsCatalog(BuildMetricsRenderModel(cfg.Catalog), cfg)
}

// ExecuteCheck runs the check command for CI/CD gating.
// It returns an error wrapping ErrCheckFailed when any tier exceeds its threshold.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, vector string) error {
	start := time.Now()
	result, err := GetCheckResult(ctx, cfg, vector)
	if err != nil {
		return err
	}
	if err := outwriter.PrintCheckResult(result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("%d violation(s) found: %w", len(result.Failures), ErrCheckFailed)
	}
	return nil
}

// ExecuteCompare scores two vectors and prints the deltas.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, before, after string) error {
	result, err := GetComparisonResult(ctx, cfg, before, after)
	if err != nil {
		return err
	}
	return outwriter.PrintComparisonResults(result, cfg)
}

// ExecuteBatch scores every vector line of r and prints the results.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, r io.Reader) error {
	start := time.Now()
	result, err := GetBatchResult(ctx, cfg, r)
	if err != nil {
		return err
	}
	return outwriter.PrintBatchResults(result, cfg, time.Since(start))
}

// GetScoreReport parses and scores a vector.
func GetScoreReport(ctx context.Context, cfg *contract.Config, vector string) (*schema.ScoreReport, error) {
	vuln, err := resolveVector(cfg, vector)
	if err != nil {
		return nil, err
	}
	return scoreVulnerability(ctx, cfg, vuln)
}

// GetSelectionsReport scores a vulnerability given as short name -> code pairs.
func GetSelectionsReport(ctx context.Context, cfg *contract.Config, selections map[schema.ShortName]string) (*schema.ScoreReport, error) {
	vuln, err := resolveSelections(cfg, selections)
	if err != nil {
		return nil, err
	}
	return scoreVulnerability(ctx, cfg, vuln)
}

// GetInteractiveReport asks the selector for metric values and scores them.
// Base metrics are always selected because every tier builds on them, unless
// --vector already supplies them. Tiers below the highest requested one that
// were not selected take their defaults.
func GetInteractiveReport(ctx context.Context, cfg *contract.Config, selector contract.MetricSelector) (*schema.ScoreReport, error) {
	requested := slices.Clone(cfg.Tiers)
	if len(requested) == 0 {
		requested = []schema.Tier{schema.BaseTier}
	}

	var prefill *cvss.Vulnerability
	if cfg.Vector != "" {
		metrics, err := cvss.ParseTierVector(cfg.Catalog, schema.BaseTier, cfg.Vector)
		if err != nil {
			return nil, fmt.Errorf("invalid --vector: %w", err)
		}
		if prefill, err = cvss.NewVulnerability(cfg.Catalog, metrics...); err != nil {
			return nil, err
		}
	}

	prompted := requested
	if prefill == nil && !slices.Contains(prompted, schema.BaseTier) {
		prompted = append([]schema.Tier{schema.BaseTier}, prompted...)
	}

	metrics, err := selector.Select(ctx, cfg.Catalog, prompted, prefill)
	if err != nil {
		return nil, fmt.Errorf("selection aborted: %w", err)
	}
	if prefill != nil && !slices.Contains(prompted, schema.BaseTier) {
		base, _ := prefill.Metrics(schema.BaseTier)
		metrics = append(base, metrics...)
	}

	vuln, err := cvss.NewVulnerability(cfg.Catalog, metrics...)
	if err != nil {
		return nil, err
	}
	if slices.Contains(requested, schema.EnvironmentalTier) {
		if err := vuln.Complete(cfg.Catalog); err != nil {
			return nil, err
		}
	}

	interactiveCfg := cfg.Clone()
	interactiveCfg.Tiers = requested
	return scoreVulnerability(ctx, interactiveCfg, vuln)
}

// scoreVulnerability builds the report of the requested tiers.
func scoreVulnerability(ctx context.Context, cfg *contract.Config, vuln *cvss.Vulnerability) (*schema.ScoreReport, error) {
	tiers := resolveTiers(cfg, vuln)
	engine := cvss.NewEngineFor(vuln, cvss.V210{})
	slog.DebugContext(ctx, "scoring vulnerability", "vector", engine.Vector(), "tiers", tiers, "verify", cfg.Verify)

	report, err := BuildScoreReport(engine, tiers, cfg)
	if err != nil {
		return nil, err
	}
	if report.Verification != nil && !report.Verification.Agrees {
		slog.WarnContext(ctx, "scores disagree with independent implementation",
			"source", report.Verification.Source, "vector", report.Vector)
	}
	return report, nil
}
