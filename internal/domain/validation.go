package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MinAmount            = "0.01"
	MaxAmount            = "1000000000000" // 1 trillion
)

var (
	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)
)

// ValidateDescription requires non-blank text within the column limit.
func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)

	if description == "" {
		return ErrEmptyDescription
	}

	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrEmptyDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount requires a strictly positive amount with cent precision.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrInvalidAmount, MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: at most two decimal places", ErrInvalidAmount)
	}

	return nil
}

// ValidateConta checks the fields a client controls.
func ValidateConta(c *Conta) error {
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}

	if err := ValidateDescription(c.Description); err != nil {
		return err
	}

	if err := ValidateAmount(c.Amount); err != nil {
		return err
	}

	if !c.DueDate.Valid() {
		return fmt.Errorf("%w: due date %q", ErrInvalidDate, c.DueDate.Raw())
	}

	return nil
}
