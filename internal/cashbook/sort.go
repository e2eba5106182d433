package cashbook

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// Locale drives description collation.
var Locale = language.BrazilianPortuguese

// Sort returns a stably ordered copy of entries.
func Sort(entries []*domain.Conta, spec SortSpec) []*domain.Conta {
	out := slices.Clone(entries)
	if out == nil {
		out = []*domain.Conta{}
	}

	cmp := comparator(spec.Column)
	if spec.Direction == Descending {
		asc := cmp
		cmp = func(a, b *domain.Conta) int { return -asc(a, b) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

func comparator(col SortColumn) func(a, b *domain.Conta) int {
	switch col {
	case SortByIssueDate:
		return func(a, b *domain.Conta) int { return compareDates(a.IssueDate, b.IssueDate) }
	case SortByDescription:
		// A collator keeps scratch buffers, so each sort gets its own.
		c := collate.New(Locale)
		return func(a, b *domain.Conta) int { return c.CompareString(a.Description, b.Description) }
	case SortByKind:
		return func(a, b *domain.Conta) int { return strings.Compare(a.Kind.String(), b.Kind.String()) }
	case SortByAmount:
		return func(a, b *domain.Conta) int { return a.Amount.Cmp(b.Amount) }
	default:
		return func(a, b *domain.Conta) int { return compareDates(a.DueDate, b.DueDate) }
	}
}

// compareDates orders invalid dates after every valid one.
func compareDates(a, b domain.Date) int {
	switch {
	case !a.Valid() && !b.Valid():
		return 0
	case !a.Valid():
		return 1
	case !b.Valid():
		return -1
	}
	return a.Time().Compare(b.Time())
}
