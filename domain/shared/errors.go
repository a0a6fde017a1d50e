/*
Package shared holds the errors shared by every domain package.

Rules:
1. Sentinel errors are matched with errors.Is.
2. DomainError captures its stack when created and formats it only when asked.
3. Domain errors carry no transport concepts such as HTTP status codes.
4. Only the standard errors package is used here.

Stack capture:
- captured inside the constructor
- formatted when logged (Stack())
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// Matched with errors.Is; they carry no detail of their own.
// ============================================================================

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyValue a required field is blank
	ErrEmptyValue = errors.New("empty value")

	// ErrInvalidIdentity id is zero or negative
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrInvalidReference a referenced id does not exist in the store
	ErrInvalidReference = errors.New("invalid reference")

	// ErrRetiredEntity mutation attempted on a retired aggregate
	ErrRetiredEntity = errors.New("entity is retired")

	// ErrAlreadyRetired retire called twice
	ErrAlreadyRetired = errors.New("entity is already retired")

	// ErrNotRetired unretire called on an active aggregate
	ErrNotRetired = errors.New("entity is not retired")

	// ErrHasActiveAssociations retire called while the association set is not empty
	ErrHasActiveAssociations = errors.New("entity has active associations")

	// ErrDuplicateName another aggregate of the same kind already uses the name
	ErrDuplicateName = errors.New("name already in use")

	// ErrInvalidTransition the order status does not allow the operation
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInsufficientAmount payment amount below the order total
	ErrInsufficientAmount = errors.New("insufficient amount")

	// ErrTransactionFailure a multi-collection write sequence failed and was rolled back
	ErrTransactionFailure = errors.New("transaction failure")
)

// ============================================================================
// DomainError
// Carries business context and the stack of the failure point; works with errors.Is and errors.As.
// ============================================================================

// DomainError is a structured error with business context and a captured stack.
type DomainError struct {
	// Err is the sentinel matched by errors.Is
	Err error

	// Entity names the aggregate kind, e.g. "category" or "order"
	Entity string

	// Message is the human readable description
	Message string

	// Field optionally names the offending field
	Field string

	// IDs optionally lists related aggregate ids (still-associated products, missing references)
	IDs []int64

	// stack frames captured at creation, formatted on demand
	stack []uintptr
}

// Error implements error
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel to errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames; only called when logging
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack records the current call stack for domain packages.
// skip is usually 3: Callers, CaptureStack and the NewXxxError constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders frames as strings, dropping runtime frames.
// At most 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// Each one captures the stack at the call site.
// ============================================================================

// NewNotFoundError reports a missing aggregate by id
func NewNotFoundError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d not found", entity, id),
		IDs:     []int64{id},
		stack:   CaptureStack(3),
	}
}

// NewNotFoundByNameError reports a miss on the unique name lookup
func NewNotFoundByNameError(entity, name string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Field:   "name",
		Message: fmt.Sprintf("%s %q not found", entity, name),
		stack:   CaptureStack(3),
	}
}

// NewValidationError reports a field that failed validation
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewEmptyValueError reports a blank required field
func NewEmptyValueError(entity, field string) error {
	return &DomainError{
		Err:     ErrEmptyValue,
		Entity:  entity,
		Field:   field,
		Message: entity + " " + field + " must not be empty",
		stack:   CaptureStack(3),
	}
}

// NewInvalidIdentityError reports a non-positive id
func NewInvalidIdentityError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrInvalidIdentity,
		Entity:  entity,
		Field:   "id",
		Message: fmt.Sprintf("%s id must be positive, got %d", entity, id),
		stack:   CaptureStack(3),
	}
}

// NewInvalidReferenceError carries the id that does not exist
func NewInvalidReferenceError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrInvalidReference,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d does not exist", entity, id),
		IDs:     []int64{id},
		stack:   CaptureStack(3),
	}
}

// NewRetiredEntityError reports a mutation on a retired aggregate
func NewRetiredEntityError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrRetiredEntity,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d is retired and cannot be modified", entity, id),
		IDs:     []int64{id},
		stack:   CaptureStack(3),
	}
}

// NewAlreadyRetiredError
func NewAlreadyRetiredError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrAlreadyRetired,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d is already retired", entity, id),
		IDs:     []int64{id},
		stack:   CaptureStack(3),
	}
}

// NewNotRetiredError
func NewNotRetiredError(entity string, id int64) error {
	return &DomainError{
		Err:     ErrNotRetired,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d is not retired", entity, id),
		IDs:     []int64{id},
		stack:   CaptureStack(3),
	}
}

// NewHasActiveAssociationsError blocks retirement.
// associated is every id still associated.
func NewHasActiveAssociationsError(entity string, id int64, associated []int64) error {
	ids := make([]int64, len(associated))
	copy(ids, associated)
	return &DomainError{
		Err:     ErrHasActiveAssociations,
		Entity:  entity,
		Message: fmt.Sprintf("%s %d still has associated products %v", entity, id, ids),
		IDs:     ids,
		stack:   CaptureStack(3),
	}
}

// NewDuplicateNameError carries the id of the aggregate that already owns name
func NewDuplicateNameError(entity, name string, ownerID int64) error {
	return &DomainError{
		Err:     ErrDuplicateName,
		Entity:  entity,
		Field:   "name",
		Message: fmt.Sprintf("%s name %q is already used by %d", entity, name, ownerID),
		IDs:     []int64{ownerID},
		stack:   CaptureStack(3),
	}
}

// NewInvalidTransitionError rejects an order operation.
// action is the rejected operation or target status.
func NewInvalidTransitionError(entity, status, action string) error {
	return &DomainError{
		Err:     ErrInvalidTransition,
		Entity:  entity,
		Field:   "status",
		Message: fmt.Sprintf("%s in status %s cannot %s", entity, status, action),
		stack:   CaptureStack(3),
	}
}

// NewInsufficientAmountError
func NewInsufficientAmountError(entity, amount, total string) error {
	return &DomainError{
		Err:     ErrInsufficientAmount,
		Entity:  entity,
		Field:   "amount",
		Message: fmt.Sprintf("amount %s is less than order total %s", amount, total),
		stack:   CaptureStack(3),
	}
}

// IDsOf returns the ids carried by the first DomainError in the chain, or nil
func IDsOf(err error) []int64 {
	var de *DomainError
	if errors.As(err, &de) {
		return de.IDs
	}
	return nil
}

// ============================================================================
// Operation errors
// Application services wrap domain errors with the operation name; the chain is kept.
// ============================================================================

// OperationError wraps a failure with the name of the operation that raised it.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// WrapOp returns nil when err is nil.
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}

// TransactionError is returned after a multi-collection sequence was rolled back.
// It matches ErrTransactionFailure and unwraps to the original cause.
type TransactionError struct {
	Collections []string
	Err         error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction over %s rolled back: %v", strings.Join(e.Collections, ","), e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func (e *TransactionError) Is(target error) bool {
	return target == ErrTransactionFailure
}

// ============================================================================
// Stacker
// Lets the API layer pull a stack from any error.
// ============================================================================

// Stacker is an error that can report its stack
type Stacker interface {
	Stack() []string
}
