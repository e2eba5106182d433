package main

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/format"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

func (a *app) contasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contas",
		Short: "Manage contas (receivables and payables)",
	}

	cmd.AddCommand(a.contasListCmd())
	cmd.AddCommand(a.contasGetCmd())
	cmd.AddCommand(a.contasAddCmd())
	cmd.AddCommand(a.contasUpdateCmd())
	cmd.AddCommand(a.contasDeleteCmd())

	return cmd
}

func (a *app) contasListCmd() *cobra.Command {
	var (
		search, kind, start, end, order, direction, output string
		year, month                                        int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contas with optional filters and ordering",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, dto.QuerySearch, search)
			setIf(q, dto.QueryKind, kind)
			setIf(q, dto.QueryStart, start)
			setIf(q, dto.QueryEnd, end)
			setIf(q, dto.QuerySort, order)
			setIf(q, dto.QueryDirection, direction)
			if year != 0 {
				q.Set(dto.QueryYear, strconv.Itoa(year))
			}
			if month != 0 {
				q.Set(dto.QueryMonth, strconv.Itoa(month))
			}

			input, err := dto.ParseListingQuery(q)
			if err != nil {
				return err
			}

			store, err := a.newStore()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			listing, err := usecase.NewReportUseCase(store, nil, 0, nil).Listing(ctx, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				return printJSON(out, dto.ContasFromDomain(listing.Contas))
			}
			return printContas(out, listing)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&search, "busca", "q", "", "Search description or type")
	f.StringVar(&kind, "tipo", "", "'A Receber', 'A Pagar' or todos")
	f.IntVar(&year, "ano", 0, "Year (0 for all)")
	f.IntVar(&month, "mes", 0, "Month 1-12 (requires --ano)")
	f.StringVar(&start, "inicio", "", "Range start (AAAA-MM-DD or DD/MM/AAAA)")
	f.StringVar(&end, "fim", "", "Range end (AAAA-MM-DD or DD/MM/AAAA)")
	f.StringVar(&order, "ordem", "", "Sort column: data_vencimento, data_emissao, descricao, tipo, valor")
	f.StringVar(&direction, "direcao", "", "asc or desc")
	f.StringVar(&output, "formato", "texto", "Output format: texto or json")

	return cmd
}

func (a *app) contasGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one conta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.newStore()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			conta, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}

			return printConta(cmd.OutOrStdout(), conta, output)
		},
	}

	cmd.Flags().StringVar(&output, "formato", "texto", "Output format: texto or json")

	return cmd
}

// contaFlags are shared by add and update.
type contaFlags struct {
	kind, description, amount, dueDate string
}

func (f *contaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "tipo", "", "'A Receber' or 'A Pagar'")
	cmd.Flags().StringVar(&f.description, "descricao", "", "Description")
	cmd.Flags().StringVar(&f.amount, "valor", "", "Amount, e.g. 1234.56 or 1.234,56")
	cmd.Flags().StringVar(&f.dueDate, "vencimento", "", "Due date (AAAA-MM-DD or DD/MM/AAAA)")
}

// apply overlays the flags that were set onto input.
func (f *contaFlags) apply(cmd *cobra.Command, input *usecase.ContaInput) error {
	flags := cmd.Flags()

	if flags.Changed("tipo") {
		kind, err := domain.ParseKind(f.kind)
		if err != nil {
			return fmt.Errorf("--tipo: %w", err)
		}
		input.Kind = kind
	}
	if flags.Changed("descricao") {
		input.Description = strings.TrimSpace(f.description)
	}
	if flags.Changed("valor") {
		amount, err := format.ParseMoney(f.amount)
		if err != nil {
			return fmt.Errorf("--valor: %w", err)
		}
		input.Amount = amount
	}
	if flags.Changed("vencimento") {
		due, err := parseDate(f.dueDate)
		if err != nil {
			return fmt.Errorf("--vencimento: %w", err)
		}
		input.DueDate = due
	}

	return domain.ValidateConta(&domain.Conta{
		Kind:        input.Kind,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
	})
}

func (a *app) contasAddCmd() *cobra.Command {
	var flags contaFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a conta",
		RunE: func(cmd *cobra.Command, args []string) error {
			var input usecase.ContaInput
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}

			store, err := a.newStore()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			conta, err := store.Create(ctx, input)
			if err != nil {
				return err
			}

			return printConta(cmd.OutOrStdout(), conta, "texto")
		},
	}

	flags.register(cmd)
	for _, name := range []string{"tipo", "descricao", "valor", "vencimento"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func (a *app) contasUpdateCmd() *cobra.Command {
	var flags contaFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a conta; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.newStore()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			current, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}

			input := usecase.ContaInput{
				Kind:        current.Kind,
				Description: current.Description,
				Amount:      current.Amount,
				DueDate:     current.DueDate,
			}
			if err := flags.apply(cmd, &input); err != nil {
				return err
			}

			conta, err := store.Update(ctx, args[0], input)
			if err != nil {
				return err
			}

			return printConta(cmd.OutOrStdout(), conta, "texto")
		},
	}

	flags.register(cmd)

	return cmd
}

func (a *app) contasDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a conta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.newStore()
			if err != nil {
				return err
			}

			ctx, cancel := a.context(cmd)
			defer cancel()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Conta %s removida\n", args[0])
			return nil
		},
	}
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// parseDate accepts ISO or dd/mm/yyyy.
func parseDate(s string) (domain.Date, error) {
	if d := domain.ParseDate(s); d.Valid() {
		return d, nil
	}
	return format.ParseDisplayDate(s)
}

func printConta(w io.Writer, c *domain.Conta, output string) error {
	if output == "json" {
		return printJSON(w, dto.ContaFromDomain(c))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	fmt.Fprintf(tw, "Tipo:\t%s\n", c.Kind)
	fmt.Fprintf(tw, "Descrição:\t%s\n", c.Description)
	fmt.Fprintf(tw, "Valor:\t%s\n", format.Signed(c.Amount, c.Kind == domain.KindReceivable))
	fmt.Fprintf(tw, "Vencimento:\t%s\n", format.Date(c.DueDate))
	fmt.Fprintf(tw, "Emissão:\t%s\n", format.Date(c.IssueDate))
	return tw.Flush()
}

func printContas(w io.Writer, listing *usecase.Listing) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMISSÃO\tVENCIMENTO\tDESCRIÇÃO\tTIPO\tVALOR")
	for _, c := range listing.Contas {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			format.Date(c.IssueDate),
			format.Date(c.DueDate),
			truncate(c.Description, 40),
			c.Kind,
			format.Signed(c.Amount, c.Kind == domain.KindReceivable),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	balance, _ := format.Balance(listing.Totals.Balance)
	fmt.Fprintf(w, "\n%d conta(s)  entradas %s  saídas %s  saldo %s\n",
		len(listing.Contas),
		format.Money(listing.Totals.Receivable),
		format.Money(listing.Totals.Payable),
		balance,
	)
	return nil
}
