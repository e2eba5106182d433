package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/E-Mello/controlefin.app/internal/adapter/client"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// contaStore is what the commands need: the API client online, a JSON
// snapshot file offline.
type contaStore interface {
	usecase.ContaSource
	Get(ctx context.Context, id string) (*domain.Conta, error)
	Create(ctx context.Context, input usecase.ContaInput) (*domain.Conta, error)
	Update(ctx context.Context, id string, input usecase.ContaInput) (*domain.Conta, error)
	Delete(ctx context.Context, id string) error
}

type app struct {
	baseURL  string
	timeout  time.Duration
	snapshot string
	verbose  bool

	// newStore is replaced in tests.
	newStore func() (contaStore, error)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	a.newStore = a.openStore

	rootCmd := &cobra.Command{
		Use:           "livrocaixa",
		Short:         "Livro Caixa CLI",
		Long:          `A command line interface for the Livro Caixa cash book: manage contas and export reports.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if a.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "url", "http://localhost:8080", "Base URL of the Livro Caixa API")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&a.snapshot, "arquivo", "", "Work offline against a local JSON snapshot instead of the API")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log retries and other details")

	rootCmd.AddCommand(a.contasCmd())
	rootCmd.AddCommand(a.relatorioCmd())

	return rootCmd
}

func (a *app) openStore() (contaStore, error) {
	if a.snapshot != "" {
		return newFileStore(a.snapshot), nil
	}
	return client.New(a.baseURL, client.WithHTTPClient(&http.Client{Timeout: a.timeout}))
}

// context bounds a command by --timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, a.timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
