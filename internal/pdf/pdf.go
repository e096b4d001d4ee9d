// Package pdf renders score reports as PDF documents using github.com/jung-kurt/gofpdf.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/huangsam/cvss2/schema"
	"github.com/jung-kurt/gofpdf"
)

// ReportExporter exports score reports to PDF format.
type ReportExporter struct {
	precision int
}

// NewReportExporter creates an exporter that prints weights and formula values with the given precision.
func NewReportExporter(precision int) *ReportExporter {
	return &ReportExporter{precision: precision}
}

// ExportScoreReport generates a PDF with one section per scored tier.
func (e *ReportExporter) ExportScoreReport(report *schema.ScoreReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	e.addHeader(pdf, tr, report)
	e.addScoreBoxes(pdf, report)
	for i := range report.Tiers {
		if pdf.GetY() > 220 {
			pdf.AddPage()
		}
		e.addTier(pdf, tr, &report.Tiers[i])
	}
	e.addVerification(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the title and the full vector.
func (e *ReportExporter) addHeader(pdf *gofpdf.Fpdf, tr func(string) string, report *schema.ScoreReport) {
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, fmt.Sprintf("CVSS v%s Score Report", report.Version), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Courier", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(0, 5, tr(report.Vector), "", "L", false)
	pdf.Ln(5)
}

// addScoreBoxes draws one colored box per tier with its score and severity.
func (e *ReportExporter) addScoreBoxes(pdf *gofpdf.Fpdf, report *schema.ScoreReport) {
	if len(report.Tiers) == 0 {
		return
	}
	const left, width, gap, height = 20.0, 170.0, 4.0, 24.0
	boxWidth := (width - gap*float64(len(report.Tiers)-1)) / float64(len(report.Tiers))
	y := pdf.GetY()

	for i, t := range report.Tiers {
		x := left + float64(i)*(boxWidth+gap)
		r, g, b := severityColor(t.Severity)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, boxWidth, height, "F")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 10)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(boxWidth, 6, t.Tier.Display(), "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 18)
		pdf.SetXY(x, y+8)
		pdf.CellFormat(boxWidth, 9, fmt.Sprintf("%.1f", t.Score), "", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetXY(x, y+17)
		pdf.CellFormat(boxWidth, 5, string(t.Severity), "", 0, "C", false, 0, "")
	}

	pdf.SetY(y + height + 6)
}

// addTier adds the metric table, formula values and vector of a tier.
func (e *ReportExporter) addTier(pdf *gofpdf.Fpdf, tr func(string) string, t *schema.TierReport) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 9, t.Tier.Display()+" Metrics", "", 1, "L", false, 0, "")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(70, 7, t.Tier.Title()+" METRIC", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "EVALUATION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "SCORE", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, m := range t.Metrics {
		pdf.CellFormat(70, 6, tr(fmt.Sprintf("%s (%s)", m.Name, m.ShortName)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, tr(fmt.Sprintf("%s (%s)", m.Label, m.Code)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.*f", e.precision, m.Weight), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 9)
	for _, f := range t.Formulas {
		pdf.CellFormat(140, 6, f.Name+" =", "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.*f", e.precision, f.Value), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Courier", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 7, tr(t.Tier.Display()+" Vulnerability Vector: "+t.Vector), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// addVerification notes the independent cross-check, if one ran.
func (e *ReportExporter) addVerification(pdf *gofpdf.Fpdf, report *schema.ScoreReport) {
	v := report.Verification
	if v == nil {
		return
	}
	pdf.SetFont("Arial", "I", 9)
	if v.Agrees {
		pdf.SetTextColor(52, 199, 89)
		pdf.CellFormat(0, 6, "Scores verified against "+v.Source, "", 1, "L", false, 0, "")
		return
	}
	pdf.SetTextColor(220, 53, 69)
	pdf.CellFormat(0, 6, "Scores disagree with "+v.Source, "", 1, "L", false, 0, "")
}

// severityColor returns RGB color based on severity.
func severityColor(s schema.Severity) (r, g, b int) {
	switch s {
	case schema.HighSeverity:
		return 220, 53, 69 // Red
	case schema.MediumSeverity:
		return 255, 149, 0 // Orange
	default:
		return 52, 199, 89 // Green
	}
}
