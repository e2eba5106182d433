package domain

import "errors"

var (
	// Conta errors
	ErrContaNotFound    = errors.New("conta not found")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidKind      = errors.New("invalid conta type")
	ErrInvalidDate      = errors.New("invalid date")

	// Report errors
	ErrInvalidReportPeriod = errors.New("invalid report period")
)
