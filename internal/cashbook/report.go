package cashbook

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/format"
)

// EmptyMessage is shown instead of sections when nothing matched.
const EmptyMessage = "Nenhuma transação encontrada para este período."

// Summary labels.
const (
	LabelTotalReceivable   = "Total a Receber"
	LabelTotalPayable      = "Total a Pagar"
	LabelSectionReceivable = "Recebimentos"
	LabelSectionPayable    = "Pagamentos"
	LabelBalance           = "Saldo"
)

// Columns of the detail table, in order.
var Columns = []string{"Data Emissão", "Data Vencimento", "Descrição", "Tipo", "Valor"}

// SummaryLine is one of the three summary figures. Prefix carries the sign;
// Value is always the absolute amount.
type SummaryLine struct {
	Label  string
	Prefix string
	Value  string
	Tone   format.Tone
}

// Text joins prefix and value: "+ R$ 5.000,00".
func (l SummaryLine) Text() string {
	return l.Prefix + " " + l.Value
}

// Row is one detail line.
type Row struct {
	IssueDate   string
	DueDate     string
	Description string
	Kind        string
	Amount      string
	Tone        format.Tone
}

// Cells returns the row in Columns order.
func (r Row) Cells() []string {
	return []string{r.IssueDate, r.DueDate, r.Description, r.Kind, r.Amount}
}

// Section is one bucket rendered for humans.
type Section struct {
	Key     string
	Title   string
	Summary []SummaryLine
	Rows    []Row
}

// ChartPoint feeds the report charts.
type ChartPoint struct {
	Label      string
	Receivable decimal.Decimal
	Payable    decimal.Decimal
	Balance    decimal.Decimal
}

// ReportDocument is everything an exporter needs, already formatted.
type ReportDocument struct {
	Kind         ReportKind
	Title        string
	Subtitle     string
	Filename     string
	Summary      []SummaryLine
	Sections     []Section
	Chart        []ChartPoint
	Totals       Totals
	Empty        bool
	EmptyMessage string
}

// Generate runs the whole pipeline over a snapshot: period filter, sort,
// aggregate and assemble. Filtering and grouping use the date field implied
// by the sort column.
func Generate(entries []*domain.Conta, params ReportParams, sort SortSpec) ReportDocument {
	field := sort.DateField()
	filtered := Filter(entries, params.Filter(field))
	sorted := Sort(filtered, sort)
	return Assemble(params, Aggregate(sorted, params.Granularity(), field))
}

// Assemble renders an aggregation into a document.
func Assemble(params ReportParams, agg Aggregation) ReportDocument {
	doc := ReportDocument{
		Kind:     params.Kind,
		Title:    reportTitle(params),
		Subtitle: periodLine(params),
		Filename: reportFilename(params),
		Summary:  summaryLines(agg.Totals, LabelTotalReceivable, LabelTotalPayable),
		Totals:   agg.Totals,
		Chart:    chart(agg),
	}

	if len(agg.Buckets) == 0 {
		doc.Empty = true
		doc.EmptyMessage = EmptyMessage
		return doc
	}

	doc.Sections = make([]Section, 0, len(agg.Buckets))
	for _, b := range agg.Buckets {
		s := Section{
			Key:     b.Key,
			Title:   sectionTitle(b.Key, agg.Granularity),
			Summary: summaryLines(b.Totals, LabelSectionReceivable, LabelSectionPayable),
			Rows:    make([]Row, 0, len(b.Entries)),
		}
		for _, c := range b.Entries {
			s.Rows = append(s.Rows, row(c))
		}
		doc.Sections = append(doc.Sections, s)
	}

	return doc
}

func summaryLines(t Totals, receivable, payable string) []SummaryLine {
	tone := format.ToneOf(t.Balance)
	prefix := "+"
	if tone == format.ToneNegative {
		prefix = "-"
	}

	return []SummaryLine{
		{Label: receivable, Prefix: "+", Value: format.Money(t.Receivable), Tone: format.TonePositive},
		{Label: payable, Prefix: "-", Value: format.Money(t.Payable), Tone: format.ToneNegative},
		{Label: LabelBalance, Prefix: prefix, Value: format.Money(t.Balance), Tone: tone},
	}
}

func row(c *domain.Conta) Row {
	positive := c.Kind == domain.KindReceivable
	tone := format.TonePositive
	if !positive {
		tone = format.ToneNegative
	}

	return Row{
		IssueDate:   format.Date(c.IssueDate),
		DueDate:     format.Date(c.DueDate),
		Description: c.Description,
		Kind:        c.Kind.String(),
		Amount:      format.Signed(c.Amount, positive),
		Tone:        tone,
	}
}

func sectionTitle(key string, g Granularity) string {
	if key == InvalidBucketKey {
		return format.InvalidDate
	}

	switch g {
	case GranularityYear:
		m, _ := strconv.Atoi(key)
		return format.MonthName(time.Month(m))
	case GranularityMonth:
		return "Dia " + key
	default:
		return format.Date(domain.ParseDate(key))
	}
}

func reportTitle(p ReportParams) string {
	switch p.Kind {
	case ReportYearly:
		return fmt.Sprintf("Relatório Anual - %d", p.Year)
	case ReportMonthly:
		return fmt.Sprintf("Relatório Mensal - %s/%d", format.MonthName(time.Month(p.Month)), p.Year)
	default:
		return "Relatório Personalizado"
	}
}

func periodLine(p ReportParams) string {
	start, end := p.Bounds()
	return fmt.Sprintf("Período: %s a %s", format.Date(start), format.Date(end))
}

// reportFilename has no extension; exporters append their own.
func reportFilename(p ReportParams) string {
	switch p.Kind {
	case ReportYearly:
		return fmt.Sprintf("relatorio-anual-%d", p.Year)
	case ReportMonthly:
		return fmt.Sprintf("relatorio-mensal-%s-%d", format.MonthName(time.Month(p.Month)), p.Year)
	default:
		return fmt.Sprintf("relatorio-personalizado-%s-a-%s", p.RangeStart, p.RangeEnd)
	}
}

// chart gives the yearly report one point per month, zeros included, and
// the other reports a receivable/payable breakdown.
func chart(agg Aggregation) []ChartPoint {
	if agg.Granularity != GranularityYear {
		return []ChartPoint{
			{Label: domain.LabelReceivable, Receivable: agg.Totals.Receivable, Balance: agg.Totals.Receivable},
			{Label: domain.LabelPayable, Payable: agg.Totals.Payable, Balance: agg.Totals.Payable.Neg()},
		}
	}

	points := make([]ChartPoint, 12)
	for m := time.January; m <= time.December; m++ {
		pt := ChartPoint{Label: format.MonthAbbrev(m)}
		if b, ok := agg.Bucket(fmt.Sprintf("%02d", int(m))); ok {
			pt.Receivable = b.Totals.Receivable
			pt.Payable = b.Totals.Payable
			pt.Balance = b.Totals.Balance
		}
		points[m-1] = pt
	}
	return points
}
