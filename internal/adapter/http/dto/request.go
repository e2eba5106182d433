package dto

import (
	"strings"

	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/usecase"
)

// ContaRequest is the body of POST /contas/ and PUT /contas/{id}.
type ContaRequest struct {
	Tipo           string  `json:"tipo"`
	Descricao      string  `json:"descricao"`
	Valor          *Amount `json:"valor"`
	DataVencimento string  `json:"data_vencimento"`
}

// Validate reports every field problem at once.
func (r *ContaRequest) Validate() []ValidationDetail {
	var details []ValidationDetail

	if _, err := domain.ParseKind(r.Tipo); err != nil {
		details = append(details, fieldError("tipo", "tipo deve ser 'A Receber' ou 'A Pagar'", "value_error.enum"))
	}

	if err := domain.ValidateDescription(r.Descricao); err != nil {
		msg := "descrição é obrigatória"
		if strings.TrimSpace(r.Descricao) != "" {
			msg = "descrição muito longa"
		}
		details = append(details, fieldError("descricao", msg, "value_error.str"))
	}

	switch {
	case r.Valor == nil:
		details = append(details, fieldError("valor", "campo obrigatório", "value_error.missing"))
	case domain.ValidateAmount(r.Valor.Decimal) != nil:
		details = append(details, fieldError("valor", "valor deve ser positivo", "value_error.number"))
	}

	if !domain.ParseDate(r.DataVencimento).Valid() {
		details = append(details, fieldError("data_vencimento", "data inválida, use AAAA-MM-DD", "value_error.date"))
	}

	return details
}

// ToUseCaseInput converts to use case input. Call Validate first.
func (r *ContaRequest) ToUseCaseInput() usecase.ContaInput {
	kind, _ := domain.ParseKind(r.Tipo)

	input := usecase.ContaInput{
		Kind:        kind,
		Description: strings.TrimSpace(r.Descricao),
		DueDate:     domain.ParseDate(r.DataVencimento),
	}
	if r.Valor != nil {
		input.Amount = r.Valor.Decimal
	}

	return input
}

func fieldError(field, msg, typ string) ValidationDetail {
	return ValidationDetail{Loc: []string{"body", field}, Msg: msg, Type: typ}
}
