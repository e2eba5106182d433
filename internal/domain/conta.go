package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a conta as money coming in or money going out.
type Kind int

const (
	KindReceivable Kind = iota + 1
	KindPayable
)

// Wire labels used by the API and every rendered document.
const (
	LabelReceivable = "A Receber"
	LabelPayable    = "A Pagar"
)

// ParseKind accepts the wire labels and the legacy income/expense names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a receber", "income", "receivable":
		return KindReceivable, nil
	case "a pagar", "expense", "payable":
		return KindPayable, nil
	}

	return 0, ErrInvalidKind
}

// String returns the wire label.
func (k Kind) String() string {
	switch k {
	case KindReceivable:
		return LabelReceivable
	case KindPayable:
		return LabelPayable
	}

	return "unknown"
}

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindReceivable || k == KindPayable
}

// Conta is a single cash-flow entry: a receivable or a payable.
type Conta struct {
	ID          string
	Kind        Kind
	Description string
	Amount      decimal.Decimal
	DueDate     Date
	IssueDate   Date
}

// Signed returns the amount with the sign implied by the kind.
func (c *Conta) Signed() decimal.Decimal {
	if c.Kind == KindPayable {
		return c.Amount.Neg()
	}

	return c.Amount
}
