package order

import (
	"errors"
	"fmt"

	"storefront/domain/shared"
)

var (
	// ErrOrderNotFound also matches shared.ErrNotFound
	ErrOrderNotFound = errors.New("order not found")
)

// NewOrderNotFoundError matches ErrOrderNotFound and shared.ErrNotFound,
// and implements shared.Stacker. The stack is captured here (skip=3).
func NewOrderNotFoundError(orderID int64) error {
	return &orderDomainError{
		sentinel: ErrOrderNotFound,
		message:  fmt.Sprintf("order %d not found", orderID),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidOrderStateError matches shared.ErrInvalidTransition
func NewInvalidOrderStateError(current Status, action string) error {
	return shared.NewInvalidTransitionError(EntityName, string(current), action)
}

type orderDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string {
	return e.message
}

func (e *orderDomainError) Unwrap() error {
	return e.sentinel
}

func (e *orderDomainError) Is(target error) bool {
	return e.sentinel == ErrOrderNotFound && target == shared.ErrNotFound
}

// Stack implements shared.Stacker
func (e *orderDomainError) Stack() []string {
	return shared.FormatStack(e.stack)
}
