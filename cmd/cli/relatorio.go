package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/E-Mello/controlefin.app/internal/adapter/export/pdf"
	"github.com/E-Mello/controlefin.app/internal/adapter/export/xlsx"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

type reportFlags struct {
	year, month         int
	start, end          string
	order, direction    string
	output, destination string
}

func (a *app) relatorioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relatorio",
		Short: "Generate yearly, monthly or custom period reports",
	}

	cmd.AddCommand(a.reportCmd(cashbook.ReportYearly, "Report for one year, grouped by month", "ano"))
	cmd.AddCommand(a.reportCmd(cashbook.ReportMonthly, "Report for one month, grouped by day", "ano", "mes"))
	cmd.AddCommand(a.reportCmd(cashbook.ReportCustom, "Report for a date range, grouped by day", "inicio", "fim"))

	return cmd
}

func (a *app) reportCmd(kind cashbook.ReportKind, short string, required ...string) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, kind, f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.year, "ano", 0, "Year")
	flags.IntVar(&f.month, "mes", 0, "Month 1-12")
	flags.StringVar(&f.start, "inicio", "", "Range start (AAAA-MM-DD or DD/MM/AAAA)")
	flags.StringVar(&f.end, "fim", "", "Range end (AAAA-MM-DD or DD/MM/AAAA)")
	flags.StringVar(&f.order, "ordem", "", "Sort column: data_vencimento, data_emissao, descricao, tipo, valor")
	flags.StringVar(&f.direction, "direcao", "", "asc or desc")
	flags.StringVar(&f.output, "formato", "texto", "texto, json, xlsx or pdf")
	flags.StringVarP(&f.destination, "saida", "o", "", "Output file for xlsx and pdf (default: the report's file name)")

	for _, name := range required {
		_ = cmd.MarkFlagRequired(name)
	}

	// Period flags that do not apply to this layout are hidden.
	for _, name := range []string{"ano", "mes", "inicio", "fim"} {
		if !slices.Contains(required, name) {
			_ = flags.MarkHidden(name)
		}
	}

	return cmd
}

func (a *app) runReport(cmd *cobra.Command, kind cashbook.ReportKind, f reportFlags) error {
	q := url.Values{}
	if f.year != 0 {
		q.Set(dto.QueryYear, strconv.Itoa(f.year))
	}
	if f.month != 0 {
		q.Set(dto.QueryMonth, strconv.Itoa(f.month))
	}
	setIf(q, dto.QueryStart, f.start)
	setIf(q, dto.QueryEnd, f.end)
	setIf(q, dto.QuerySort, f.order)
	setIf(q, dto.QueryDirection, f.direction)

	input, _, err := dto.ParseReportQuery(string(kind), q)
	if err != nil {
		return err
	}

	store, err := a.newStore()
	if err != nil {
		return err
	}

	ctx, cancel := a.context(cmd)
	defer cancel()

	reports := usecase.NewReportUseCase(store, nil, 0, nil, xlsx.New(), pdf.New())
	out := cmd.OutOrStdout()

	switch output := strings.ToLower(f.output); output {
	case "texto", "text":
		doc, err := reports.BuildReport(ctx, input)
		if err != nil {
			return err
		}
		return printReport(out, doc)

	case "json":
		doc, err := reports.BuildReport(ctx, input)
		if err != nil {
			return err
		}
		return printJSON(out, dto.ReportFromDocument(doc))

	default:
		artifact, err := reports.ExportReport(ctx, input, output)
		if err != nil {
			return err
		}

		dest := f.destination
		if dest == "" {
			dest = artifact.Filename
		}
		if err := os.WriteFile(dest, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}

		zerolog.Ctx(ctx).Debug().Str("file", dest).Int("bytes", len(artifact.Data)).Msg("report exported")
		fmt.Fprintf(out, "Relatório salvo em %s\n", dest)
		return nil
	}
}

func printReport(w io.Writer, doc *cashbook.ReportDocument) error {
	fmt.Fprintln(w, doc.Title)
	fmt.Fprintln(w, doc.Subtitle)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printSummary(tw, doc.Summary)

	if doc.Empty {
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s\n", doc.EmptyMessage)
		return nil
	}

	for _, section := range doc.Sections {
		fmt.Fprintf(tw, "\n%s\n", section.Title)
		printSummary(tw, section.Summary)
		fmt.Fprintln(tw, strings.ToUpper(strings.Join(cashbook.Columns, "\t")))
		for _, r := range section.Rows {
			cells := r.Cells()
			cells[2] = truncate(cells[2], 40)
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}

	return tw.Flush()
}

func printSummary(tw *tabwriter.Writer, lines []cashbook.SummaryLine) {
	for _, l := range lines {
		fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Text())
	}
}
