package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Kinds of rows in the comparison CSV.
const (
	tierRowKind   = "tier"
	metricRowKind = "metric"
)

// PrintComparisonResults outputs the comparison of two vectors.
func PrintComparisonResults(result schema.ComparisonResult, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut || cfg.Output == schema.PDFOut {
		return unsupportedOutput(cfg.Output, "comparisons")
	}
	writer := func(w io.Writer) error {
		return WriteComparisonResults(w, result, cfg)
	}
	return writeWithFile(cfg.OutputFile, writer, fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output))))
}

// WriteComparisonResults outputs the comparison, dispatching based on the output format configured.
func WriteComparisonResults(w io.Writer, result schema.ComparisonResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		header := []string{"kind", "key", "before", "after", "delta"}
		if err := writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			return writeCSVResultsForComparison(cw, result)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	default:
		return writeComparisonTable(w, result, cfg)
	}
}

// writeCSVResultsForComparison writes tier deltas first, then changed metrics.
func writeCSVResultsForComparison(w *csv.Writer, result schema.ComparisonResult) error {
	for _, d := range result.Details {
		row := []string{tierRowKind, string(d.Tier), fmtScore(d.BeforeScore), fmtScore(d.AfterScore), fmtScore(d.Delta)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	for _, c := range result.Changes {
		row := []string{metricRowKind, string(c.ShortName), c.Before, c.After, ""}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeComparisonTable writes the tier deltas and the changed metrics as tables.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "Before: %s\nAfter:  %s\n\n", result.Before, result.After); err != nil {
		return err
	}

	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tier", "Before", "After", "Delta", "Severity"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, d := range result.Details {
		var deltaStr string
		switch {
		case d.Delta > 0:
			deltaStr = red(fmt.Sprintf("+%.1f ▲", d.Delta))
		case d.Delta < 0:
			deltaStr = green(fmt.Sprintf("%.1f ▼", d.Delta))
		default:
			deltaStr = yellow(fmtScore(0))
		}
		severity := string(d.AfterSeverity)
		if d.BeforeSeverity != d.AfterSeverity {
			severity = fmt.Sprintf("%s → %s", d.BeforeSeverity, d.AfterSeverity)
		}
		data = append(data, []string{
			d.Tier.Display(),
			fmtScore(d.BeforeScore),
			fmtScore(d.AfterScore),
			deltaStr,
			severity,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Changes) > 0 {
		changes := tablewriter.NewWriter(w)
		changes.Header([]string{"Metric", "Before", "After"})
		var rows [][]string
		for _, c := range result.Changes {
			rows = append(rows, []string{
				fmt.Sprintf("%s (%s)", c.Name, c.ShortName),
				orDash(c.Before),
				orDash(c.After),
			})
		}
		if err := changes.Bulk(rows); err != nil {
			return err
		}
		if err := changes.Render(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Changed metrics: %d, Worsened tiers: %d, Improved tiers: %d\n",
		result.Summary.ChangedMetrics, result.Summary.WorsenedTiers, result.Summary.ImprovedTiers)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
