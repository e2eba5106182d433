package dto

import (
	"github.com/E-Mello/controlefin.app/internal/cashbook"
	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/format"
)

// ContaResponse represents a conta in API responses.
type ContaResponse struct {
	ID             string `json:"id"`
	Tipo           string `json:"tipo"`
	Descricao      string `json:"descricao"`
	Valor          Amount `json:"valor"`
	DataVencimento string `json:"data_vencimento"`
	DataEmissao    string `json:"data_emissao"`
}

// ContaFromDomain converts domain conta to response.
func ContaFromDomain(c *domain.Conta) *ContaResponse {
	return &ContaResponse{
		ID:             c.ID,
		Tipo:           c.Kind.String(),
		Descricao:      c.Description,
		Valor:          NewAmount(c.Amount),
		DataVencimento: c.DueDate.String(),
		DataEmissao:    c.IssueDate.String(),
	}
}

// ContasFromDomain converts domain contas to responses.
func ContasFromDomain(contas []*domain.Conta) []*ContaResponse {
	result := make([]*ContaResponse, len(contas))
	for i, c := range contas {
		result[i] = ContaFromDomain(c)
	}
	return result
}

// DeleteResponse confirms a removal.
type DeleteResponse struct {
	ID       string `json:"id"`
	Mensagem string `json:"mensagem"`
}

// SummaryResponse carries the dashboard totals.
type SummaryResponse struct {
	Entradas Amount `json:"entradas"`
	Saidas   Amount `json:"saidas"`
	Saldo    Amount `json:"saldo"`
}

// SummaryFromTotals converts cash book totals to response.
func SummaryFromTotals(t cashbook.Totals) SummaryResponse {
	return SummaryResponse{
		Entradas: NewAmount(t.Receivable),
		Saidas:   NewAmount(t.Payable),
		Saldo:    NewAmount(t.Balance),
	}
}

// SummaryLineResponse is one formatted summary figure.
type SummaryLineResponse struct {
	Rotulo string `json:"rotulo"`
	Texto  string `json:"texto"`
	Tom    string `json:"tom"`
}

// RowResponse is one report detail line.
type RowResponse struct {
	DataEmissao    string `json:"data_emissao"`
	DataVencimento string `json:"data_vencimento"`
	Descricao      string `json:"descricao"`
	Tipo           string `json:"tipo"`
	Valor          string `json:"valor"`
	Tom            string `json:"tom"`
}

// SectionResponse is one report bucket.
type SectionResponse struct {
	Chave  string                `json:"chave"`
	Titulo string                `json:"titulo"`
	Resumo []SummaryLineResponse `json:"resumo"`
	Linhas []RowResponse         `json:"linhas"`
}

// ChartPointResponse feeds client side charts.
type ChartPointResponse struct {
	Rotulo   string `json:"rotulo"`
	Entradas Amount `json:"entradas"`
	Saidas   Amount `json:"saidas"`
	Saldo    Amount `json:"saldo"`
}

// ReportResponse is the JSON rendering of a report document.
type ReportResponse struct {
	Tipo      string                `json:"tipo"`
	Titulo    string                `json:"titulo"`
	Subtitulo string                `json:"subtitulo"`
	Arquivo   string                `json:"arquivo"`
	Resumo    []SummaryLineResponse `json:"resumo"`
	Secoes    []SectionResponse     `json:"secoes"`
	Grafico   []ChartPointResponse  `json:"grafico"`
	Totais    SummaryResponse       `json:"totais"`
	Vazio     bool                  `json:"vazio"`
	Mensagem  string                `json:"mensagem,omitempty"`
}

// ReportFromDocument converts a report document to response.
func ReportFromDocument(doc *cashbook.ReportDocument) *ReportResponse {
	resp := &ReportResponse{
		Tipo:      string(doc.Kind),
		Titulo:    doc.Title,
		Subtitulo: doc.Subtitle,
		Arquivo:   doc.Filename,
		Resumo:    summaryLines(doc.Summary),
		Secoes:    make([]SectionResponse, 0, len(doc.Sections)),
		Grafico:   make([]ChartPointResponse, 0, len(doc.Chart)),
		Totais:    SummaryFromTotals(doc.Totals),
		Vazio:     doc.Empty,
		Mensagem:  doc.EmptyMessage,
	}

	for _, s := range doc.Sections {
		section := SectionResponse{
			Chave:  s.Key,
			Titulo: s.Title,
			Resumo: summaryLines(s.Summary),
			Linhas: make([]RowResponse, 0, len(s.Rows)),
		}
		for _, r := range s.Rows {
			section.Linhas = append(section.Linhas, RowResponse{
				DataEmissao:    r.IssueDate,
				DataVencimento: r.DueDate,
				Descricao:      r.Description,
				Tipo:           r.Kind,
				Valor:          r.Amount,
				Tom:            toneName(r.Tone),
			})
		}
		resp.Secoes = append(resp.Secoes, section)
	}

	for _, p := range doc.Chart {
		resp.Grafico = append(resp.Grafico, ChartPointResponse{
			Rotulo:   p.Label,
			Entradas: NewAmount(p.Receivable),
			Saidas:   NewAmount(p.Payable),
			Saldo:    NewAmount(p.Balance),
		})
	}

	return resp
}

func summaryLines(lines []cashbook.SummaryLine) []SummaryLineResponse {
	out := make([]SummaryLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, SummaryLineResponse{Rotulo: l.Label, Texto: l.Text(), Tom: toneName(l.Tone)})
	}
	return out
}

func toneName(t format.Tone) string {
	switch t {
	case format.TonePositive:
		return "positivo"
	case format.ToneNegative:
		return "negativo"
	}
	return "neutro"
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationDetail is one failed field check.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the 422 body.
type ValidationErrorResponse struct {
	Detail []ValidationDetail `json:"detail"`
}
