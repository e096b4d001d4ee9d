package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/cvss2/internal/contract"
	"github.com/huangsam/cvss2/internal/parquet"
	"github.com/huangsam/cvss2/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintBatchResults outputs every scored line of a batch.
func PrintBatchResults(result *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.ParquetOut:
		records := parquet.RecordsFromBatch(result, cfg.Catalog.Version())
		if err := parquet.WriteScoreRecordsParquet(records, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet scores to %s\n", cfg.OutputFile)
		return nil
	case schema.PDFOut:
		return unsupportedOutput(cfg.Output, "batch results")
	}

	writer := func(w io.Writer) error {
		return WriteBatchResults(w, result, cfg, duration)
	}
	return writeWithFile(cfg.OutputFile, writer, fmt.Sprintf("Wrote %s", strings.ToUpper(string(cfg.Output))))
}

// WriteBatchResults writes batch results in a streamable format.
func WriteBatchResults(w io.Writer, result *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.CSVOut:
		header := []string{"line", "input", "vector", "base", "temporal", "environmental", "severity", "error"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, e := range result.Entries {
				row := []string{
					strconv.Itoa(e.Line),
					e.Input,
					e.Vector,
					optScore(e.Base, ""),
					optScore(e.Temporal, ""),
					optScore(e.Environmental, ""),
					string(e.Severity),
					e.Error,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return writeBatchTable(w, result, cfg, duration)
	}
}

func writeBatchTable(w io.Writer, result *schema.BatchResult, cfg *contract.Config, duration time.Duration) error {
	vectorWidth := getMaxDescriptionWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Line", "Vector", "Base", "Temporal", "Environmental", "Severity"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft}
	})

	var data [][]string
	for _, e := range result.Entries {
		row := []string{strconv.Itoa(e.Line), contract.TruncateText(e.Input, vectorWidth)}
		if e.Error != "" {
			row = append(row, "-", "-", "-", "error: "+contract.TruncateText(e.Error, vectorWidth))
		} else {
			severity := string(e.Severity)
			if final, ok := e.FinalScore(); ok {
				severity = severityLabel(final, cfg)
			}
			row = append(row, optScore(e.Base, "-"), optScore(e.Temporal, "-"), optScore(e.Environmental, "-"), severity)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	_, err := fmt.Fprintf(w, "Scored %d of %d vectors (%d failed) in %v, max base score: %.1f\n",
		s.Scored, s.Total, s.Failed, duration, s.MaxBase)
	return err
}

// optScore formats a score that may be absent.
func optScore(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return fmtScore(*v)
}
