package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
	"github.com/E-Mello/controlefin.app/internal/infrastructure/postgres/generated"
)

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func dateToPg(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: d.Valid()}
}

func pgToDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

// rowToConta keeps an unknown tipo as the zero Kind; the table constraint
// makes that unreachable.
func rowToConta(row generated.Conta) *domain.Conta {
	kind, _ := domain.ParseKind(row.Tipo)

	return &domain.Conta{
		ID:          row.ID,
		Kind:        kind,
		Description: row.Descricao,
		Amount:      numericToDecimal(row.Valor),
		DueDate:     pgToDate(row.DataVencimento),
		IssueDate:   pgToDate(row.DataEmissao),
	}
}
