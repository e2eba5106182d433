package dto

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Amount is a decimal encoded as a bare JSON number. Decoding also accepts
// a quoted number.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MarshalJSON writes the value with two decimal places.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// UnmarshalJSON reads a JSON number or a numeric string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("valor: null is not a number")
	}

	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("valor: %w", err)
		}
		s = unquoted
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("valor: %q is not a number", s)
	}
	a.Decimal = d

	return nil
}
