package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/E-Mello/controlefin.app/internal/adapter/client"
	"github.com/E-Mello/controlefin.app/internal/adapter/http/dto"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

func input(kind domain.Kind, description, amount, due string) usecase.ContaInput {
	return usecase.ContaInput{
		Kind:        kind,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		DueDate:     domain.ParseDate(due),
	}
}

func getJSON(t *testing.T, s *stack, path string, out any) *http.Response {
	t.Helper()

	resp, err := s.server.Client().Get(s.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp
}

func TestContasLifecycle(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	salary, err := s.client.Create(ctx, input(domain.KindReceivable, "Salário", "5000", "2024-03-05"))
	require.NoError(t, err)
	assert.NotEmpty(t, salary.ID)
	assert.True(t, salary.IssueDate.Valid())

	rent, err := s.client.Create(ctx, input(domain.KindPayable, "Aluguel", "1500", "2024-03-10"))
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		got, err := s.client.Get(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aluguel", got.Description)
		assert.Equal(t, domain.KindPayable, got.Kind)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(1500)))
		assert.Equal(t, "2024-03-10", got.DueDate.String())
	})

	t.Run("summary", func(t *testing.T) {
		var summary dto.SummaryResponse
		resp := getJSON(t, s, "/resumo", &summary)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "5000", summary.Entradas.String())
		assert.Equal(t, "1500", summary.Saidas.String())
		assert.Equal(t, "3500", summary.Saldo.String())
	})

	t.Run("list filtered by type", func(t *testing.T) {
		var contas []dto.ContaResponse
		resp := getJSON(t, s, "/contas/?tipo=A%20Pagar", &contas)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, contas, 1)
		assert.Equal(t, rent.ID, contas[0].ID)
		assert.Equal(t, "1500.00", resp.Header.Get("X-Total-Saidas"))
	})

	t.Run("monthly report", func(t *testing.T) {
		var report dto.ReportResponse
		resp := getJSON(t, s, "/relatorios/mensal?ano=2024&mes=3", &report)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Relatório Mensal - Março/2024", report.Titulo)
		assert.False(t, report.Vazio)
		require.Len(t, report.Secoes, 2)
		assert.Equal(t, "Dia 05", report.Secoes[0].Titulo)
		assert.Equal(t, "Dia 10", report.Secoes[1].Titulo)
	})

	t.Run("xlsx export", func(t *testing.T) {
		resp := getJSON(t, s, "/relatorios/anual?ano=2024&formato=xlsx", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "relatorio-anual-2024.xlsx")
	})

	t.Run("update keeps issue date", func(t *testing.T) {
		updated, err := s.client.Update(ctx, rent.ID, input(domain.KindPayable, "Aluguel março", "1600", "2024-03-11"))
		require.NoError(t, err)
		assert.Equal(t, rent.IssueDate.String(), updated.IssueDate.String())

		var summary dto.SummaryResponse
		getJSON(t, s, "/resumo", &summary)
		assert.Equal(t, "3400", summary.Saldo.String(), "cached snapshot must be invalidated")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.client.Delete(ctx, rent.ID))

		_, err := s.client.Get(ctx, rent.ID)
		assert.True(t, client.IsNotFound(err))

		err = s.client.Delete(ctx, rent.ID)
		assert.ErrorIs(t, err, domain.ErrContaNotFound)
	})
}

func TestContasValidation(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, err := s.client.Create(ctx, input(domain.KindReceivable, "   ", "10", "2024-01-01"))
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)

	contas, err := s.client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, contas)
}

func TestReport_InvalidPeriod(t *testing.T) {
	s := newStack(t)

	resp := getJSON(t, s, "/relatorios/personalizado?inicio=2024-05-01&fim=2024-04-01", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReport_YearlyGroupsByMonth(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.db.CreateTestConta(ctx, domain.KindReceivable, "Venda", "100", "2024-02-01", "2024-01-15")
	s.db.CreateTestConta(ctx, domain.KindPayable, "Fornecedor", "40", "2024-01-20", "2024-01-10")

	var report dto.ReportResponse
	resp := getJSON(t, s, "/relatorios/anual?ano=2024", &report)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, report.Secoes, 2)
	assert.Equal(t, "Janeiro", report.Secoes[0].Titulo)
	assert.Equal(t, "Fevereiro", report.Secoes[1].Titulo)
	assert.Equal(t, "60", report.Totais.Saldo.String())
}

func TestHealth(t *testing.T) {
	s := newStack(t)

	resp := getJSON(t, s, "/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
