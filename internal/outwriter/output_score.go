package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/internal/parquet"
	"github.com/huangsam/cvss2/internal/pdf"
	"github.com/huangsam/cvss2/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScoreReport outputs a score report, dispatching based on the output format configured.
func PrintScoreReport(report *schema.ScoreReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if err := parquet.WriteScoreRecordsParquet(parquet.RecordsFromReport(report), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet scores to %s\n", cfg.OutputFile)
		return nil
	case schema.PDFOut:
		data, err := pdf.NewReportExporter(cfg.Precision).ExportScoreReport(report)
		if err != nil {
			return fmt.Errorf("error writing PDF output: %w", err)
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}, "Wrote PDF report")
	}

	writer := func(w io.Writer) error {
		return WriteScoreReport(w, report, cfg)
	}
	return writeWithFile(cfg.OutputFile, writer, fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output))))
}

// WriteScoreReport writes a score report in a streamable format (text, JSON or CSV).
func WriteScoreReport(w io.Writer, report *schema.ScoreReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, report)
	case schema.CSVOut:
		return writeCSVWithHeader(w, scoreCSVHeader, func(cw *csv.Writer) error {
			return writeScoreCSVRows(cw, report, fmtFloat)
		})
	case schema.TextOut, "":
		if cfg.Verbose {
			return writeScoreTables(w, report, cfg, fmtFloat)
		}
		return writeScoreLines(w, report)
	default:
		return unsupportedOutput(cfg.Output, "score reports")
	}
}

var scoreCSVHeader = []string{
	"tier",
	"metric",
	"short_name",
	"evaluation",
	"code",
	"weight",
	"tier_score",
	"severity",
	"tier_vector",
}

// writeScoreCSVRows writes one row per selected metric of every reported tier.
func writeScoreCSVRows(w *csv.Writer, report *schema.ScoreReport, fmtFloat func(float64) string) error {
	for _, tr := range report.Tiers {
		for _, m := range tr.Metrics {
			row := []string{
				string(tr.Tier),
				m.Name,
				string(m.ShortName),
				m.Label,
				m.Code,
				fmtFloat(m.Weight),
				fmtScore(tr.Score),
				string(tr.Severity),
				tr.Vector,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeScoreLines writes the short form of a report:
//
//	Base Score = 7.8
//	Base Vulnerability Vector = AV:N/AC:L/Au:N/C:N/I:N/A:C
func writeScoreLines(w io.Writer, report *schema.ScoreReport) error {
	for _, tr := range report.Tiers {
		if _, err := fmt.Fprintf(w, "\n%s Score = %s\n%s Vulnerability Vector = %s\n",
			tr.Tier.Display(), fmtScore(tr.Score), tr.Tier.Display(), tr.Vector); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeVerification(w, report)
}

// writeScoreTables writes the metric and formula tables of every reported tier.
func writeScoreTables(w io.Writer, report *schema.ScoreReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	descWidth := getMaxDescriptionWidth(cfg)

	for _, tr := range report.Tiers {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		metrics := tablewriter.NewWriter(w)
		metrics.Header([]string{tr.Tier.Title() + " METRIC", "EVALUATION", "SCORE", "DESCRIPTION"})
		metrics.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft}
		})
		var rows [][]string
		for _, m := range tr.Metrics {
			rows = append(rows, []string{
				m.Name,
				m.Label,
				fmtFloat(m.Weight),
				contract.TruncateText(m.Description, descWidth),
			})
		}
		if err := metrics.Bulk(rows); err != nil {
			return err
		}
		if err := metrics.Render(); err != nil {
			return err
		}

		formulas := tablewriter.NewWriter(w)
		formulas.Header([]string{"FORMULA", tr.Tier.Title() + " SCORE"})
		formulas.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
		})
		rows = rows[:0]
		for _, f := range tr.Formulas {
			rows = append(rows, []string{f.Name + " =", fmtFloat(f.Value)})
		}
		if err := formulas.Bulk(rows); err != nil {
			return err
		}
		if err := formulas.Render(); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s Vulnerability Vector: %s\nSeverity: %s\n",
			tierHeading(tr.Tier, cfg), tr.Vector, severityLabel(tr.Score, cfg)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nVector: %s (CVSS v%s)\n", report.Vector, report.Version); err != nil {
		return err
	}
	return writeVerification(w, report)
}

// writeVerification notes whether an independent implementation agrees with the report.
func writeVerification(w io.Writer, report *schema.ScoreReport) error {
	v := report.Verification
	if v == nil {
		return nil
	}
	if v.Agrees {
		_, err := fmt.Fprintf(w, "✅ Verified against %s\n", v.Source)
		return err
	}
	var parts []string
	for _, tier := range schema.AllTiers {
		if score, ok := v.Scores[tier]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", tier, fmtScore(score)))
		}
	}
	_, err := fmt.Fprintf(w, "⚠️  %s disagrees: %s\n", v.Source, strings.Join(parts, ", "))
	return err
}
