package cashbook

import (
	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

func conta(id string, kind domain.Kind, desc, amount, due string) *domain.Conta {
	return &domain.Conta{
		ID:          id,
		Kind:        kind,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		DueDate:     domain.ParseDate(due),
		IssueDate:   domain.ParseDate("2023-12-01"),
	}
}

func ids(entries []*domain.Conta) []string {
	out := make([]string, len(entries))
	for i, c := range entries {
		out[i] = c.ID
	}
	return out
}

// januaryFixture is the salary/rent/february-bill snapshot used across tests.
func januaryFixture() []*domain.Conta {
	return []*domain.Conta{
		conta("1", domain.KindReceivable, "Salário", "5000", "2024-01-05"),
		conta("2", domain.KindPayable, "Aluguel", "1300", "2024-01-10"),
		conta("3", domain.KindPayable, "Conta de luz", "800", "2024-02-15"),
	}
}
