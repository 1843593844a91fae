package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Error types for consistent error handling across the engine.
// All of them are recoverable: they are surfaced as user-facing messages
// and never leave partially-applied state behind.

// ErrInsufficientFunds indicates not enough balance for the operation.
type ErrInsufficientFunds struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: available=%s required=%s",
		e.Available.StringFixed(2), e.Required.StringFixed(2))
}

// ErrAccountNotFound indicates a named savings account lookup failed.
type ErrAccountNotFound struct {
	Name string
}

func (e *ErrAccountNotFound) Error() string {
	return fmt.Sprintf("savings account not found: %s", e.Name)
}

// ErrStockNotFound indicates a stock lookup by id or name failed.
type ErrStockNotFound struct {
	Query string
}

func (e *ErrStockNotFound) Error() string {
	return fmt.Sprintf("stock not found: %s", e.Query)
}

// ErrSimulationLimit indicates the requested simulation would pass the
// hard year ceiling. The engine performs no mutation when returning it.
type ErrSimulationLimit struct {
	CurrentYear float64
	Requested   float64
	Limit       float64
}

func (e *ErrSimulationLimit) Error() string {
	return fmt.Sprintf("simulation limit exceeded: current=%.2f requested=%.2f limit=%.0f",
		e.CurrentYear, e.Requested, e.Limit)
}

// ErrUnparseableInput indicates no numeric amount was found where one
// was required.
type ErrUnparseableInput struct {
	Input string
}

func (e *ErrUnparseableInput) Error() string {
	return fmt.Sprintf("no amount found in input: %q", e.Input)
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}
