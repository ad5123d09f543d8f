package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Workflow error taxonomy. Every mutating call returns either success or one
// of these; handlers map them to HTTP statuses. All errors are terminal for
// the call — the core never retries internally.

// ErrNotFound covers both a genuinely missing entity and a caller who does
// not own it. The two cases are deliberately conflated so existence is not
// leaked to non-owners.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when the caller's role is not permitted to
// perform the operation.
var ErrUnauthorized = errors.New("operation not permitted for role")

// InsufficientStockError is returned when a debit would drive a stock
// quantity negative. Available is read from the latest committed quantity,
// never a cached one.
type InsufficientStockError struct {
	ReferenceCode string
	Size          string
	Requested     int
	Available     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s size %s: requested %d, available %d",
		e.ReferenceCode, e.Size, e.Requested, e.Available)
}

// PaymentMismatchError is returned when the declared payment splits do not
// sum to the sale total within 0.01.
type PaymentMismatchError struct {
	Declared decimal.Decimal
	Paid     decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("payment splits (%s) do not match the declared total (%s)",
		e.Paid.StringFixed(2), e.Declared.StringFixed(2))
}

// InvalidTransitionError is returned for a state transition outside the
// allowed order, or for re-acting on a terminal entity.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// ValidationError is returned for malformed input caught before any
// persistence: non-positive amounts, amounts over the cap, empty item lists.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}
