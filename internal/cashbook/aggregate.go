package cashbook

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/E-Mello/controlefin.app/internal/domain"
)

// Granularity is the bucket unit of a report.
type Granularity int

const (
	// GranularityYear buckets a year by month, keys "01".."12".
	GranularityYear Granularity = iota + 1
	// GranularityMonth buckets a month by day of month, keys "01".."31".
	GranularityMonth
	// GranularityDay buckets an arbitrary range by calendar date, keyed
	// YYYY-MM-DD so keys sort chronologically.
	GranularityDay
)

// InvalidBucketKey collects contas whose date does not parse.
const InvalidBucketKey = "invalid"

// Totals are the three figures every summary shows.
type Totals struct {
	Receivable decimal.Decimal
	Payable    decimal.Decimal
	Balance    decimal.Decimal
}

func (t *Totals) add(c *domain.Conta) {
	switch c.Kind {
	case domain.KindReceivable:
		t.Receivable = t.Receivable.Add(c.Amount)
	case domain.KindPayable:
		t.Payable = t.Payable.Add(c.Amount)
	}
	t.Balance = t.Receivable.Sub(t.Payable)
}

// Summarize reduces entries to their totals.
func Summarize(entries []*domain.Conta) Totals {
	var t Totals
	for _, c := range entries {
		t.add(c)
	}
	return t
}

// Bucket is one group of an aggregation; entries keep input order.
type Bucket struct {
	Key     string
	Entries []*domain.Conta
	Totals  Totals
}

// Aggregation is an ordered bucket list plus the grand totals.
type Aggregation struct {
	Granularity Granularity
	DateField   DateField
	Buckets     []Bucket
	Totals      Totals
}

// Bucket looks a bucket up by key.
func (a Aggregation) Bucket(key string) (Bucket, bool) {
	for _, b := range a.Buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// Keys lists bucket keys in emission order.
func (a Aggregation) Keys() []string {
	keys := make([]string, len(a.Buckets))
	for i, b := range a.Buckets {
		keys[i] = b.Key
	}
	return keys
}

// Aggregate groups entries by g on field. Buckets come out in ascending key
// order with the invalid bucket last. Grand totals are reduced directly over
// entries, independently of the bucket sums, and include the invalid bucket.
func Aggregate(entries []*domain.Conta, g Granularity, field DateField) Aggregation {
	groups := make(map[string]*Bucket)
	keys := make([]string, 0)

	for _, c := range entries {
		key := bucketKey(field.Of(c), g)
		b, ok := groups[key]
		if !ok {
			b = &Bucket{Key: key}
			groups[key] = b
			if key != InvalidBucketKey {
				keys = append(keys, key)
			}
		}
		b.Entries = append(b.Entries, c)
		b.Totals.add(c)
	}

	slices.Sort(keys)
	if _, ok := groups[InvalidBucketKey]; ok {
		keys = append(keys, InvalidBucketKey)
	}

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *groups[k])
	}

	return Aggregation{
		Granularity: g,
		DateField:   field,
		Buckets:     buckets,
		Totals:      Summarize(entries),
	}
}

func bucketKey(d domain.Date, g Granularity) string {
	if !d.Valid() {
		return InvalidBucketKey
	}

	switch g {
	case GranularityYear:
		return fmt.Sprintf("%02d", int(d.Month()))
	case GranularityMonth:
		return fmt.Sprintf("%02d", d.Day())
	default:
		return d.String()
	}
}
