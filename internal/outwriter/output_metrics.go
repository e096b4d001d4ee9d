package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintMetricsCatalog displays the metric catalog, its equations and the severity bands.
func PrintMetricsCatalog(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut || cfg.Output == schema.PDFOut {
		return unsupportedOutput(cfg.Output, "the metric catalog")
	}
	writer := func(w io.Writer) error {
		return WriteMetricsCatalog(w, model, cfg)
	}
	return writeWithFile(cfg.OutputFile, writer, fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output))))
}

// WriteMetricsCatalog writes the metric catalog in the configured format.
func WriteMetricsCatalog(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, model)
	case schema.CSVOut:
		return writeCSVWithHeader(w, metricsCSVHeader, func(cw *csv.Writer) error {
			return writeMetricsCSVRows(cw, model, fmtFloat)
		})
	default:
		return writeMetricsText(w, model, cfg, fmtFloat)
	}
}

var metricsCSVHeader = []string{
	"tier",
	"metric",
	"short_name",
	"code",
	"label",
	"weight",
	"default",
	"description",
}

func writeMetricsCSVRows(w *csv.Writer, model *schema.MetricsRenderModel, fmtFloat func(float64) string) error {
	for _, tier := range model.Tiers {
		for _, m := range tier.Metrics {
			for _, opt := range m.Options {
				row := []string{
					string(tier.Tier),
					m.Name,
					string(m.ShortName),
					opt.Code,
					opt.Label,
					fmtFloat(opt.Weight),
					strconv.FormatBool(opt.Default),
					opt.Description,
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeMetricsText renders one table per tier, then the severity bands.
func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config, fmtFloat func(float64) string) error {
	title := model.Title
	if cfg.UseColors {
		title = contract.HeaderColor.Sprint(title)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, model.Description); err != nil {
		return err
	}

	descWidth := getMaxDescriptionWidth(cfg)
	for _, tier := range model.Tiers {
		if _, err := fmt.Fprintf(w, "\n%s metrics\n", tierHeading(tier.Tier, cfg)); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"METRIC", "CODE", "VALUE", "WEIGHT", "DESCRIPTION"})
		table.Configure(func(c *tablewriter.Config) {
			c.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft}
		})
		var rows [][]string
		for _, m := range tier.Metrics {
			for i, opt := range m.Options {
				name := ""
				if i == 0 {
					name = fmt.Sprintf("%s (%s)", m.Name, m.ShortName)
				}
				value := opt.Label
				if opt.Default {
					value += " *"
				}
				rows = append(rows, []string{
					name,
					opt.Code,
					value,
					fmtFloat(opt.Weight),
					contract.TruncateText(opt.Description, descWidth),
				})
			}
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n", tier.Formula); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\n* default value used by --complete"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\nSeverity:"); err != nil {
		return err
	}
	for _, band := range model.Severities {
		if _, err := fmt.Fprintf(w, "  %-8s %4.1f - %4.1f\n", band.Severity, band.Min, band.Max); err != nil {
			return err
		}
	}
	return nil
}
