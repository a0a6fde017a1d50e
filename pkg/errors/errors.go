package errors

import (
	"errors"
	"fmt"

	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"

	"gorm.io/gorm"
)

// ErrorCode application error code
type ErrorCode string

const (
	// General
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Catalog
	CodeEmptyValue            ErrorCode = "EMPTY_VALUE"
	CodeInvalidIdentity       ErrorCode = "INVALID_IDENTITY"
	CodeInvalidReference      ErrorCode = "INVALID_REFERENCE"
	CodeRetiredEntity         ErrorCode = "RETIRED_ENTITY"
	CodeAlreadyRetired        ErrorCode = "ALREADY_RETIRED"
	CodeNotRetired            ErrorCode = "NOT_RETIRED"
	CodeHasActiveAssociations ErrorCode = "HAS_ACTIVE_ASSOCIATIONS"
	CodeDuplicateName         ErrorCode = "DUPLICATE_NAME"
	CodeTransactionFailure    ErrorCode = "TRANSACTION_FAILURE"

	// Orders and payments
	CodeOrderNotFound         ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState     ErrorCode = "INVALID_ORDER_STATE"
	CodeOrderAlreadyPaid      ErrorCode = "ORDER_ALREADY_PAID"
	CodeOrderAlreadyCancelled ErrorCode = "ORDER_ALREADY_CANCELLED"
	CodeInsufficientAmount    ErrorCode = "INSUFFICIENT_AMOUNT"
)

// AppError application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	IDs     []int64   `json:"ids,omitempty"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps err with a code
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Is reports whether err is an AppError with code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// domainCodes is matched in order; more specific sentinels come first
var domainCodes = []struct {
	target error
	code   ErrorCode
}{
	{order.ErrOrderNotFound, CodeOrderNotFound},
	{payment.ErrOrderAlreadyPaid, CodeOrderAlreadyPaid},
	{payment.ErrOrderAlreadyCancelled, CodeOrderAlreadyCancelled},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrEmptyValue, CodeEmptyValue},
	{shared.ErrInvalidIdentity, CodeInvalidIdentity},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrInvalidReference, CodeInvalidReference},
	{shared.ErrRetiredEntity, CodeRetiredEntity},
	{shared.ErrAlreadyRetired, CodeAlreadyRetired},
	{shared.ErrNotRetired, CodeNotRetired},
	{shared.ErrHasActiveAssociations, CodeHasActiveAssociations},
	{shared.ErrDuplicateName, CodeDuplicateName},
	{shared.ErrInvalidTransition, CodeInvalidOrderState},
	{shared.ErrInsufficientAmount, CodeInsufficientAmount},
	{gorm.ErrDuplicatedKey, CodeConflict},
	{shared.ErrTransactionFailure, CodeTransactionFailure},
}

// FromDomainError maps a domain error to an AppError.
// Matching walks the chain with errors.Is, so a rollback wrapper never hides the cause.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range domainCodes {
		if errors.Is(err, m.target) {
			return &AppError{Code: m.code, Message: messageOf(err), IDs: shared.IDsOf(err), Err: err}
		}
	}
	return Wrap(err, CodeInternal, err.Error())
}

// messageOf prefers the domain error's own message over operation prefixes
func messageOf(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
