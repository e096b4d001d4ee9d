package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
)

// PrintCheckResult displays the results of a policy check.
func PrintCheckResult(result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut || cfg.Output == schema.PDFOut {
		return unsupportedOutput(cfg.Output, "check results")
	}
	writer := func(w io.Writer) error {
		return WriteCheckResult(w, result, cfg, duration)
	}
	return writeWithFile(cfg.OutputFile, writer, fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output))))
}

// WriteCheckResult writes a check result in the configured format.
func WriteCheckResult(w io.Writer, result *schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.CSVOut:
		header := []string{"tier", "score", "threshold", "passed", "severity"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, tier := range result.CheckedTiers {
				score := result.Scores[tier]
				threshold := result.Thresholds[tier]
				row := []string{
					string(tier),
					fmtScore(score),
					fmtScore(threshold),
					strconv.FormatBool(score <= threshold),
					contract.GetPlainLabel(score),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		if err := writeCheckHeader(w, result, duration); err != nil {
			return err
		}
		if result.Passed {
			return writeCheckSuccess(w, result, cfg)
		}
		return writeCheckFailure(w, result, cfg)
	}
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result *schema.CheckResult, duration time.Duration) error {
	if _, err := fmt.Fprintln(w, "Policy Check Results:"); err != nil {
		return err
	}

	tiers := make([]string, 0, len(result.CheckedTiers))
	thresholds := make([]string, 0, len(result.CheckedTiers))
	for _, tier := range result.CheckedTiers {
		tiers = append(tiers, string(tier))
		thresholds = append(thresholds, fmt.Sprintf("%s=%.1f", tier, result.Thresholds[tier]))
	}

	// Define labels and values for dynamic padding
	labels := []string{"Vector:", "Tiers:", "Thresholds:"}
	values := []any{result.Vector, strings.Join(tiers, ", "), strings.Join(thresholds, ", ")}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		if _, err := fmt.Fprintf(w, "  %-*s %v\n", maxLabelLen+1, label, values[i]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nChecked %d tier(s) in %v\n\n", len(result.CheckedTiers), duration)
	return err
}

// writeCheckSuccess prints the success case output.
func writeCheckSuccess(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "✅ All tiers passed policy checks\n\nScores observed:\n"); err != nil {
		return err
	}
	for _, tier := range result.CheckedTiers {
		score := result.Scores[tier]
		if _, err := fmt.Fprintf(w, "  %s: %.1f (%s)\n", tier, score, severityLabel(score, cfg)); err != nil {
			return err
		}
	}
	return nil
}

// writeCheckFailure prints every tier above its threshold.
func writeCheckFailure(w io.Writer, result *schema.CheckResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "❌ Policy check failed: %d violation(s) found across %d tier(s)\n\n",
		len(result.Failures), len(result.CheckedTiers)); err != nil {
		return err
	}
	for _, f := range result.Failures {
		if _, err := fmt.Fprintf(w, "  - %s (score: %.1f > threshold: %.1f, %s)\n",
			f.Tier, f.Score, f.Threshold, severityLabel(f.Score, cfg)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
