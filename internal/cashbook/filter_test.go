package cashbook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

func datePtr(s string) *domain.Date {
	d := domain.ParseDate(s)
	return &d
}

func TestFilter(t *testing.T) {
	entries := januaryFixture()

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{name: "no-op keeps everything in order", spec: FilterSpec{}, want: []string{"1", "2", "3"}},
		{name: "year and month", spec: FilterSpec{Year: 2024, Month: 1}, want: []string{"1", "2"}},
		{name: "month ignored without year", spec: FilterSpec{Month: 2}, want: []string{"1", "2", "3"}},
		{name: "kind", spec: FilterSpec{Kind: domain.KindPayable}, want: []string{"2", "3"}},
		{name: "search is case insensitive", spec: FilterSpec{Search: "SAL"}, want: []string{"1"}},
		{name: "search does not strip accents", spec: FilterSpec{Search: "salario"}, want: []string{}},
		{name: "other year", spec: FilterSpec{Year: 2023}, want: []string{}},
		{
			name: "inclusive range",
			spec: FilterSpec{RangeStart: datePtr("2024-01-05"), RangeEnd: datePtr("2024-01-10")},
			want: []string{"1", "2"},
		},
		{
			name: "end bound covers the whole day",
			spec: FilterSpec{RangeEnd: datePtr("2024-01-10T00:00:00")},
			want: []string{"1", "2"},
		},
		{
			name: "reversed range is empty",
			spec: FilterSpec{RangeStart: datePtr("2024-02-01"), RangeEnd: datePtr("2024-01-01")},
			want: []string{},
		},
		{
			name: "predicates are conjunctive",
			spec: FilterSpec{Kind: domain.KindPayable, Year: 2024, Month: 1, Search: "alu"},
			want: []string{"2"},
		},
		{
			name: "issue date field",
			spec: FilterSpec{Year: 2023, Month: 12, DateField: IssueDateField},
			want: []string{"1", "2", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(entries, tt.spec)))
		})
	}
}

func TestFilterInvalidDates(t *testing.T) {
	entries := append(januaryFixture(), conta("bad", domain.KindReceivable, "Bônus", "100", "31/01/2024"))

	assert.Contains(t, ids(Filter(entries, FilterSpec{})), "bad")
	assert.NotContains(t, ids(Filter(entries, FilterSpec{Year: 2024})), "bad")
	assert.NotContains(t, ids(Filter(entries, FilterSpec{RangeStart: datePtr("2000-01-01")})), "bad")
}

func TestFilterEmptyAndNonMutating(t *testing.T) {
	assert.Empty(t, Filter(nil, FilterSpec{Year: 2024}))

	entries := januaryFixture()
	out := Filter(entries, FilterSpec{Kind: domain.KindPayable})
	out[0] = nil
	assert.Equal(t, []string{"1", "2", "3"}, ids(entries))
}
