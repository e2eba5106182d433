package cashbook

import (
	"strings"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// DateField selects which date of a conta drives filtering and grouping.
type DateField int

const (
	DueDateField DateField = iota
	IssueDateField
)

// Of returns the selected date of c.
func (f DateField) Of(c *domain.Conta) domain.Date {
	if f == IssueDateField {
		return c.IssueDate
	}
	return c.DueDate
}

// KindAll disables the kind predicate.
const KindAll domain.Kind = 0

// FilterSpec holds the list view selections. Zero values are no-ops: empty
// search, KindAll, Year 0 ("all"), Month 0 ("all"), nil range bounds.
type FilterSpec struct {
	Search     string
	Kind       domain.Kind
	Year       int
	Month      int // only checked when Year is set
	RangeStart *domain.Date
	RangeEnd   *domain.Date
	DateField  DateField
}

// hasDatePredicate reports whether any predicate reads the date field.
func (s FilterSpec) hasDatePredicate() bool {
	return s.Year != 0 || s.RangeStart != nil || s.RangeEnd != nil
}

type SortColumn string

const (
	SortByDueDate     SortColumn = "data_vencimento"
	SortByIssueDate   SortColumn = "data_emissao"
	SortByDescription SortColumn = "descricao"
	SortByKind        SortColumn = "tipo"
	SortByAmount      SortColumn = "valor"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortSpec orders a list. The zero value sorts by due date ascending.
type SortSpec struct {
	Column    SortColumn
	Direction SortDirection
}

// DefaultSort is due date, newest first.
func DefaultSort() SortSpec {
	return SortSpec{Column: SortByDueDate, Direction: Descending}
}

// DateField is the date that filtering and grouping must use alongside
// this ordering.
func (s SortSpec) DateField() DateField {
	if s.Column == SortByIssueDate {
		return IssueDateField
	}
	return DueDateField
}

// ParseSortColumn maps both the API names and the older UI names.
func ParseSortColumn(s string) (SortColumn, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "date", "duedate", "data_vencimento", "vencimento":
		return SortByDueDate, true
	case "createdat", "issuedate", "data_emissao", "emissao":
		return SortByIssueDate, true
	case "description", "descricao":
		return SortByDescription, true
	case "type", "kind", "tipo":
		return SortByKind, true
	case "amount", "valor":
		return SortByAmount, true
	}
	return "", false
}

// ParseSortDirection accepts asc/desc in any case.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	}
	return "", false
}
