// Package pdf renders report documents as A4 PDF files.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/format"
)

// ContentType of a PDF document.
const ContentType = "application/pdf"

const (
	margin     = 15.0
	lineHeight = 7.0
	font       = "Helvetica"
)

// column widths in mm, matching cashbook.Columns.
var widths = []float64{25, 28, 67, 25, 35}

type rgb struct{ r, g, b int }

var tones = map[format.Tone]rgb{
	format.TonePositive: {16, 185, 129},
	format.ToneNegative: {239, 68, 68},
	format.ToneNeutral:  {0, 0, 0},
}

// Exporter draws a portrait A4 document.
type Exporter struct{}

// New creates an Exporter.
func New() *Exporter { return &Exporter{} }

func (*Exporter) Format() string      { return "pdf" }
func (*Exporter) ContentType() string { return ContentType }

// Export renders title, period, summary and then one block per section with
// its own summary and a bordered table.
func (e *Exporter) Export(doc *cashbook.ReportDocument) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(true, margin)
	p.SetTitle(doc.Title, true)
	p.AddPage()

	r := &renderer{pdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}

	p.SetFont(font, "B", 18)
	r.text(doc.Title, 10)
	p.SetFont(font, "", 11)
	r.text(doc.Subtitle, lineHeight)
	p.Ln(3)

	p.SetFont(font, "", 12)
	r.summary(doc.Summary)

	if doc.Empty {
		p.Ln(lineHeight)
		p.SetFont(font, "I", 11)
		r.text(doc.EmptyMessage, lineHeight)
	}

	for _, s := range doc.Sections {
		p.Ln(lineHeight)
		p.SetFont(font, "B", 14)
		r.text(s.Title, 9)
		p.SetFont(font, "", 10)
		r.summary(s.Summary)
		p.Ln(2)
		r.table(s.Rows)
	}

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}

	return buf.Bytes(), nil
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) text(s string, h float64) {
	r.pdf.CellFormat(0, h, r.tr(s), "", 1, "L", false, 0, "")
}

func (r *renderer) color(t format.Tone) {
	c := tones[t]
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func (r *renderer) summary(lines []cashbook.SummaryLine) {
	for _, l := range lines {
		r.pdf.CellFormat(45, lineHeight, r.tr(l.Label+":"), "", 0, "L", false, 0, "")
		r.color(l.Tone)
		r.pdf.CellFormat(0, lineHeight, r.tr(l.Text()), "", 1, "L", false, 0, "")
		r.color(format.ToneNeutral)
	}
}

func (r *renderer) table(rows []cashbook.Row) {
	r.pdf.SetFont(font, "B", 9)
	r.pdf.SetFillColor(240, 240, 240)
	for i, c := range cashbook.Columns {
		r.pdf.CellFormat(widths[i], lineHeight, r.tr(c), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont(font, "", 9)
	last := len(cashbook.Columns) - 1
	for _, row := range rows {
		for i, v := range row.Cells() {
			align := "L"
			if i == last {
				align = "R"
				r.color(row.Tone)
			}
			r.pdf.CellFormat(widths[i], lineHeight, r.tr(truncate(v, widths[i])), "1", 0, align, false, 0, "")
		}
		r.color(format.ToneNeutral)
		r.pdf.Ln(-1)
	}
}

// truncate keeps text inside its cell. An average 9pt Helvetica glyph is
// about 1.7mm wide.
func truncate(s string, width float64) string {
	limit := int(width / 1.7)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
