// Package xlsx renders report documents as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/format"
)

const (
	// ContentType of an .xlsx workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SummaryMarker separates the header block from the detail rows.
	SummaryMarker = "--- RESUMO ---"

	colorPositive = "10B981"
	colorNegative = "EF4444"
)

// Exporter writes one sheet per report.
type Exporter struct{}

// New creates an Exporter.
func New() *Exporter { return &Exporter{} }

func (*Exporter) Format() string      { return "xlsx" }
func (*Exporter) ContentType() string { return ContentType }

// SheetName is the worksheet title for a report kind.
func SheetName(kind cashbook.ReportKind) string {
	switch kind {
	case cashbook.ReportYearly:
		return "Relatório Anual"
	case cashbook.ReportMonthly:
		return "Relatório Mensal"
	default:
		return "Relatório Personalizado"
	}
}

// Export lays the document out as: column header, blank line, title,
// period, summary lines, the summary marker, then every section with its
// own title, summary and rows.
func (e *Exporter) Export(doc *cashbook.ReportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(doc.Kind)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	w, err := newWriter(f, sheet)
	if err != nil {
		return nil, err
	}

	w.header(cashbook.Columns)
	w.blank()
	w.label(doc.Title)
	w.label(doc.Subtitle)
	for _, line := range doc.Summary {
		w.summary(line)
	}
	w.label(SummaryMarker)

	if doc.Empty {
		w.label(doc.EmptyMessage)
	}

	for _, s := range doc.Sections {
		w.blank()
		w.label(s.Title)
		for _, line := range s.Summary {
			w.summary(line)
		}
		for _, r := range s.Rows {
			w.row(r)
		}
	}

	if w.err != nil {
		return nil, fmt.Errorf("xlsx: write cells: %w", w.err)
	}

	if err := f.SetColWidth(sheet, "A", "B", 16); err != nil {
		return nil, fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "C", "C", 40); err != nil {
		return nil, fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "D", "E", 18); err != nil {
		return nil, fmt.Errorf("xlsx: column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// writer appends rows and keeps the first error, so the layout code above
// reads top to bottom.
type writer struct {
	f     *excelize.File
	sheet string
	next  int
	bold  int
	tones map[format.Tone]int
	err   error
}

func newWriter(f *excelize.File, sheet string) (*writer, error) {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	positive, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: colorPositive}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}
	negative, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: colorNegative}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: style: %w", err)
	}

	return &writer{
		f:     f,
		sheet: sheet,
		next:  1,
		bold:  bold,
		tones: map[format.Tone]int{format.TonePositive: positive, format.ToneNegative: negative},
	}, nil
}

func (w *writer) set(col int, value string) string {
	cell, err := excelize.CoordinatesToCellName(col, w.next)
	if err != nil {
		w.fail(err)
		return ""
	}
	w.fail(w.f.SetCellValue(w.sheet, cell, value))
	return cell
}

func (w *writer) style(cell string, id int) {
	if cell == "" {
		return
	}
	w.fail(w.f.SetCellStyle(w.sheet, cell, cell, id))
}

func (w *writer) tone(cell string, t format.Tone) {
	if id, ok := w.tones[t]; ok {
		w.style(cell, id)
	}
}

func (w *writer) fail(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *writer) header(cols []string) {
	for i, c := range cols {
		w.style(w.set(i+1, c), w.bold)
	}
	w.next++
}

func (w *writer) blank() { w.next++ }

// label writes text in the Descrição column.
func (w *writer) label(text string) {
	w.style(w.set(3, text), w.bold)
	w.next++
}

func (w *writer) summary(line cashbook.SummaryLine) {
	w.set(3, line.Label)
	w.tone(w.set(5, line.Text()), line.Tone)
	w.next++
}

func (w *writer) row(r cashbook.Row) {
	for i, v := range r.Cells() {
		cell := w.set(i+1, v)
		if i == len(cashbook.Columns)-1 {
			w.tone(cell, r.Tone)
		}
	}
	w.next++
}
