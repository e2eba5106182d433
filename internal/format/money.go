// Package format renders amounts and dates the way every view and export of
// the cash book shows them: Brazilian real, pt-BR separators, dd/mm/yyyy.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "R$"

var ErrInvalidMoney = errors.New("invalid money text")

// Tone is the semantic colour of a rendered value.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// ToneOf maps a signed value to its tone; zero is positive.
func ToneOf(d decimal.Decimal) Tone {
	if d.IsNegative() {
		return ToneNegative
	}
	return TonePositive
}

// Number renders the absolute value of d with two decimals, dots between
// thousands and a decimal comma: 1234.5 -> "1.234,50".
func Number(d decimal.Decimal) string {
	parts := strings.Split(d.Abs().StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	return b.String() + "," + decPart
}

// Money renders the absolute value as currency: "R$ 1.234,56". The sign is
// never folded into the number; use Signed for that.
func Money(d decimal.Decimal) string {
	return CurrencySymbol + " " + Number(d)
}

// Signed renders "+ R$ x" or "- R$ x".
func Signed(d decimal.Decimal, positive bool) string {
	if positive {
		return "+ " + Money(d)
	}
	return "- " + Money(d)
}

// Balance renders a signed value with its own sign and tone.
func Balance(d decimal.Decimal) (string, Tone) {
	tone := ToneOf(d)
	return Signed(d, tone == TonePositive), tone
}

// ParseMoney is the inverse of Money and Signed. It also accepts the masked
// input "1.234,56" and plain "1234.56". A comma always marks the decimal
// part; without one, a lone dot followed by exactly three digits is read as a
// thousands separator.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, CurrencySymbol))
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return decimal.Zero, ErrInvalidMoney
	}

	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	case strings.Count(s, ".") == 1 && len(s)-strings.Index(s, ".")-1 == 3:
		s = strings.ReplaceAll(s, ".", "")
	}

	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidMoney, err)
	}

	if neg {
		d = d.Neg()
	}

	return d, nil
}
