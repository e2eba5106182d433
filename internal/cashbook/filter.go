package cashbook

import (
	"strings"
	"time"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// Filter returns the contas matching every active predicate of spec, in
// input order. Date predicates never match an invalid date; with no date
// predicate active such contas pass through untouched.
func Filter(entries []*domain.Conta, spec FilterSpec) []*domain.Conta {
	out := make([]*domain.Conta, 0, len(entries))
	search := strings.ToLower(spec.Search)

	for _, c := range entries {
		if search != "" && !strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		if spec.Kind != KindAll && c.Kind != spec.Kind {
			continue
		}
		if spec.hasDatePredicate() && !matchDate(spec.DateField.Of(c), spec) {
			continue
		}
		out = append(out, c)
	}

	return out
}

func matchDate(d domain.Date, spec FilterSpec) bool {
	if !d.Valid() {
		return false
	}

	if spec.Year != 0 {
		if d.Year() != spec.Year {
			return false
		}
		if spec.Month != 0 && d.Month() != time.Month(spec.Month) {
			return false
		}
	}

	// Bounds compare whole calendar days, so the end bound is inclusive
	// through the last instant of its day.
	if spec.RangeStart != nil && (!spec.RangeStart.Valid() || d.Before(*spec.RangeStart)) {
		return false
	}
	if spec.RangeEnd != nil && (!spec.RangeEnd.Valid() || d.After(*spec.RangeEnd)) {
		return false
	}

	return true
}
