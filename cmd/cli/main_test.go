package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

const seedSnapshot = `[
  {"id": "a1", "tipo": "A Receber", "descricao": "Salário", "valor": 5000, "data_vencimento": "2024-03-05", "data_emissao": "2024-03-01"},
  {"id": "a2", "tipo": "A Pagar", "descricao": "Aluguel", "valor": "1500.00", "data_vencimento": "2024-03-10", "data_emissao": "2024-03-01"},
  {"id": "a3", "tipo": "A Pagar", "descricao": "Internet", "valor": 99.9, "data_vencimento": "2024-04-10", "data_emissao": "2024-04-01"}
]`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "contas.json")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write snapshot: %v", err)
		}
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("Descrição", 6); got != "Des..." {
		t.Fatalf("expected rune-aware truncation, got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected JSON output: %q", buf.String())
	}
}

func TestContasList_Text(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	out, err := runCLI(t, "--arquivo", path, "contas", "list", "--ano", "2024", "--mes", "3")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, want := range []string{"Salário", "Aluguel", "+ R$ 5.000,00", "- R$ 1.500,00", "2 conta(s)", "saldo + R$ 3.500,00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Internet") {
		t.Errorf("April conta should be filtered out:\n%s", out)
	}
}

func TestContasList_JSONSortedByAmount(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	out, err := runCLI(t, "--arquivo", path, "contas", "list", "--ordem", "valor", "--direcao", "desc", "--formato", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if strings.Join(ids, ",") != "a1,a2,a3" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestContasList_InvalidSort(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	if _, err := runCLI(t, "--arquivo", path, "contas", "list", "--ordem", "nope"); err == nil {
		t.Fatal("expected error for unknown sort column")
	}
}

func TestContasLifecycle(t *testing.T) {
	path := writeSnapshot(t, "")

	out, err := runCLI(t, "--arquivo", path, "contas", "add",
		"--tipo", "A Pagar",
		"--descricao", "  Conta de luz ",
		"--valor", "1.234,56",
		"--vencimento", "15/03/2024",
	)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out, "- R$ 1.234,56") || !strings.Contains(out, "15/03/2024") {
		t.Fatalf("unexpected add output:\n%s", out)
	}

	store := newFileStore(path)
	contas, err := store.List(context.Background())
	if err != nil || len(contas) != 1 {
		t.Fatalf("expected one stored conta, got %d (err %v)", len(contas), err)
	}
	id := contas[0].ID
	if contas[0].Description != "Conta de luz" {
		t.Fatalf("description was not trimmed: %q", contas[0].Description)
	}
	if !contas[0].IssueDate.Valid() {
		t.Fatal("issue date should be set on create")
	}

	if _, err := runCLI(t, "--arquivo", path, "contas", "update", id, "--valor", "200"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Amount.String() != "200" || got.Description != "Conta de luz" || got.Kind != domain.KindPayable {
		t.Fatalf("update should only change the amount: %+v", got)
	}

	out, err = runCLI(t, "--arquivo", path, "contas", "get", id, "--formato", "json")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(out, `"valor": 200.00`) {
		t.Fatalf("unexpected get output:\n%s", out)
	}

	if _, err := runCLI(t, "--arquivo", path, "contas", "delete", id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err = runCLI(t, "--arquivo", path, "contas", "get", id)
	if !errors.Is(err, domain.ErrContaNotFound) {
		t.Fatalf("expected ErrContaNotFound, got %v", err)
	}
}

func TestContasList_UnknownTipoRejected(t *testing.T) {
	const snapshot = `[
  {"id": "a1", "tipo": "A Receber", "descricao": "Salário", "valor": 5000, "data_vencimento": "2024-03-05", "data_emissao": "2024-03-01"},
  {"id": "a2", "tipo": "talvez", "descricao": "Aluguel", "valor": 1500, "data_vencimento": "2024-03-10", "data_emissao": "2024-03-01"}
]`
	path := writeSnapshot(t, snapshot)

	_, err := runCLI(t, "--arquivo", path, "contas", "list")
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if !strings.Contains(err.Error(), "a2") {
		t.Errorf("expected the offending conta in the error, got %v", err)
	}

	_, err = runCLI(t, "--arquivo", path, "contas", "delete", "a1")
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind on delete, got %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(raw) != snapshot {
		t.Fatalf("snapshot must be left untouched, got:\n%s", raw)
	}
}

func TestContasAdd_Validation(t *testing.T) {
	path := writeSnapshot(t, "")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"zero amount", []string{"--tipo", "A Receber", "--descricao", "x", "--valor", "0", "--vencimento", "2024-01-01"}, domain.ErrInvalidAmount},
		{"bad type", []string{"--tipo", "talvez", "--descricao", "x", "--valor", "10", "--vencimento", "2024-01-01"}, domain.ErrInvalidKind},
		{"bad date", []string{"--tipo", "A Receber", "--descricao", "x", "--valor", "10", "--vencimento", "31/02/2024"}, domain.ErrInvalidDate},
		{"blank description", []string{"--tipo", "A Receber", "--descricao", "   ", "--valor", "10", "--vencimento", "2024-01-01"}, domain.ErrEmptyDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--arquivo", path, "contas", "add"}, tt.args...)
			_, err := runCLI(t, args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("rejected contas must not create the snapshot")
	}
}

func TestContasAdd_MissingFlag(t *testing.T) {
	path := writeSnapshot(t, "")

	if _, err := runCLI(t, "--arquivo", path, "contas", "add", "--tipo", "A Receber"); err == nil {
		t.Fatal("expected required flag error")
	}
}

func TestRelatorioMensal_Text(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	out, err := runCLI(t, "--arquivo", path, "relatorio", "mensal", "--ano", "2024", "--mes", "3")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	for _, want := range []string{"Relatório Mensal - Março/2024", "Dia 05", "Dia 10", "+ R$ 3.500,00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "Dia 05") > strings.Index(out, "Dia 10") {
		t.Errorf("sections out of order:\n%s", out)
	}
}

func TestRelatorioAnual_Empty(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	out, err := runCLI(t, "--arquivo", path, "relatorio", "anual", "--ano", "1999")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Nenhuma transação encontrada para este período.") {
		t.Fatalf("expected empty message, got:\n%s", out)
	}
}

func TestRelatorioPersonalizado_InvalidRange(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	_, err := runCLI(t, "--arquivo", path, "relatorio", "personalizado", "--inicio", "2024-05-01", "--fim", "2024-04-01")
	if !errors.Is(err, domain.ErrInvalidReportPeriod) {
		t.Fatalf("expected ErrInvalidReportPeriod, got %v", err)
	}
}

func TestRelatorio_ExportFiles(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	for _, format := range []string{"xlsx", "pdf"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "relatorio."+format)

			out, err := runCLI(t, "--arquivo", path, "relatorio", "anual", "--ano", "2024", "--formato", format, "--saida", dest)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}
			if !strings.Contains(out, dest) {
				t.Fatalf("expected destination in output, got %q", out)
			}

			info, err := os.Stat(dest)
			if err != nil {
				t.Fatalf("export file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Fatal("export file is empty")
			}
		})
	}
}

func TestRelatorio_UnknownFormat(t *testing.T) {
	path := writeSnapshot(t, seedSnapshot)

	if _, err := runCLI(t, "--arquivo", path, "relatorio", "anual", "--ano", "2024", "--formato", "docx"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
