package cashbook

import (
	"fmt"
	"slices"
	"time"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// ReportKind names the three report layouts.
type ReportKind string

const (
	ReportYearly  ReportKind = "anual"
	ReportMonthly ReportKind = "mensal"
	ReportCustom  ReportKind = "personalizado"
)

// ParseReportKind accepts the Portuguese route names and their English
// equivalents.
func ParseReportKind(s string) (ReportKind, error) {
	switch s {
	case "anual", "yearly":
		return ReportYearly, nil
	case "mensal", "monthly":
		return ReportMonthly, nil
	case "personalizado", "custom":
		return ReportCustom, nil
	}
	return "", fmt.Errorf("%w: unknown report %q", domain.ErrInvalidReportPeriod, s)
}

// ReportParams selects the period a report covers.
type ReportParams struct {
	Kind       ReportKind
	Year       int
	Month      int
	RangeStart domain.Date
	RangeEnd   domain.Date
}

// Validate checks that the fields required by Kind are present.
func (p ReportParams) Validate() error {
	switch p.Kind {
	case ReportYearly:
		if p.Year <= 0 {
			return fmt.Errorf("%w: year is required", domain.ErrInvalidReportPeriod)
		}
	case ReportMonthly:
		if p.Year <= 0 {
			return fmt.Errorf("%w: year is required", domain.ErrInvalidReportPeriod)
		}
		if p.Month < 1 || p.Month > 12 {
			return fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidReportPeriod)
		}
	case ReportCustom:
		if !p.RangeStart.Valid() || !p.RangeEnd.Valid() {
			return fmt.Errorf("%w: start and end dates are required", domain.ErrInvalidReportPeriod)
		}
		if p.RangeStart.After(p.RangeEnd) {
			return fmt.Errorf("%w: start date is after end date", domain.ErrInvalidReportPeriod)
		}
	default:
		return fmt.Errorf("%w: unknown report %q", domain.ErrInvalidReportPeriod, p.Kind)
	}
	return nil
}

// Granularity is the bucket unit of the report kind.
func (p ReportParams) Granularity() Granularity {
	switch p.Kind {
	case ReportYearly:
		return GranularityYear
	case ReportMonthly:
		return GranularityMonth
	default:
		return GranularityDay
	}
}

// Bounds returns the first and last day covered.
func (p ReportParams) Bounds() (domain.Date, domain.Date) {
	switch p.Kind {
	case ReportYearly:
		return domain.NewDate(p.Year, time.January, 1), domain.NewDate(p.Year, time.December, 31)
	case ReportMonthly:
		return MonthBounds(p.Year, time.Month(p.Month))
	default:
		return p.RangeStart, p.RangeEnd
	}
}

// Filter is the FilterSpec selecting the report period on field.
func (p ReportParams) Filter(field DateField) FilterSpec {
	spec := FilterSpec{DateField: field}
	switch p.Kind {
	case ReportYearly:
		spec.Year = p.Year
	case ReportMonthly:
		spec.Year = p.Year
		spec.Month = p.Month
	default:
		start, end := p.RangeStart, p.RangeEnd
		spec.RangeStart = &start
		spec.RangeEnd = &end
	}
	return spec
}

// MonthBounds returns the first and last day of a month.
func MonthBounds(year int, month time.Month) (domain.Date, domain.Date) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return domain.DateOf(first), domain.DateOf(last)
}

// AvailableYears lists the distinct years present on field, newest first.
// An empty snapshot still offers the year of now.
func AvailableYears(entries []*domain.Conta, field DateField, now time.Time) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)

	for _, c := range entries {
		d := field.Of(c)
		if !d.Valid() {
			continue
		}
		if _, ok := seen[d.Year()]; ok {
			continue
		}
		seen[d.Year()] = struct{}{}
		years = append(years, d.Year())
	}

	if len(years) == 0 {
		return []int{now.Year()}
	}

	slices.Sort(years)
	slices.Reverse(years)
	return years
}
