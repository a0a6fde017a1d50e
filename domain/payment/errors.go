package payment

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrOrderAlreadyPaid the order is COMPLETE; matches shared.ErrInvalidTransition
	ErrOrderAlreadyPaid = errors.New("order already paid")

	// ErrOrderAlreadyCancelled the order is CANCELLED; matches shared.ErrInvalidTransition
	ErrOrderAlreadyCancelled = errors.New("order already cancelled")
)

// NewOrderAlreadyPaidError wraps the rejected transition so both sentinels match.
func NewOrderAlreadyPaidError(orderID int64, cause error) error {
	return &settlementError{sentinel: ErrOrderAlreadyPaid, orderID: orderID, cause: cause}
}

func NewOrderAlreadyCancelledError(orderID int64, cause error) error {
	return &settlementError{sentinel: ErrOrderAlreadyCancelled, orderID: orderID, cause: cause}
}

type settlementError struct {
	sentinel error
	orderID  int64
	cause    error
}

func (e *settlementError) Error() string {
	return fmt.Sprintf("order %d: %s", e.orderID, e.sentinel.Error())
}

func (e *settlementError) Unwrap() []error {
	return []error{e.sentinel, e.cause}
}

// Stack returns the stack of the underlying transition error.
func (e *settlementError) Stack() []string {
	var stacker shared.Stacker
	if errors.As(e.cause, &stacker) {
		return stacker.Stack()
	}
	return nil
}
