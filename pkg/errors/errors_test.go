package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomainErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
	}{
		{"not found", shared.NewNotFoundError("category", 3), CodeNotFound},
		{"order not found", order.NewOrderNotFoundError(9), CodeOrderNotFound},
		{"empty name", shared.NewEmptyValueError("tag", "name"), CodeEmptyValue},
		{"negative price", shared.NewValidationError("product", "price", "price must not be negative"), CodeValidation},
		{"unknown product", shared.NewInvalidReferenceError("product", 999), CodeInvalidReference},
		{"retired", shared.NewRetiredEntityError("tag", 1), CodeRetiredEntity},
		{"still associated", shared.NewHasActiveAssociationsError("category", 1, []int64{10}), CodeHasActiveAssociations},
		{"name taken", shared.NewDuplicateNameError("tag", "Fresh", 4), CodeDuplicateName},
		{"transition", order.NewInvalidOrderStateError(order.StatusCancelled, "complete"), CodeInvalidOrderState},
		{"underpaid", shared.NewInsufficientAmountError("payment", "1.00", "2.00"), CodeInsufficientAmount},
		{"plain", stdErrors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomainError(shared.WrapOp("some op", tt.err))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestFromDomainErrorPrefersSpecificSentinel(t *testing.T) {
	cause := order.NewInvalidOrderStateError(order.StatusComplete, "complete")
	appErr := FromDomainError(payment.NewOrderAlreadyPaidError(4, cause))
	assert.Equal(t, CodeOrderAlreadyPaid, appErr.Code)
}

func TestFromDomainErrorSeesThroughRollback(t *testing.T) {
	err := &shared.TransactionError{
		Collections: []string{"categories", "products"},
		Err:         shared.NewInvalidReferenceError("product", 999),
	}
	appErr := FromDomainError(fmt.Errorf("create category: %w", err))
	assert.Equal(t, CodeInvalidReference, appErr.Code)
	assert.Equal(t, []int64{999}, appErr.IDs)
	assert.Equal(t, "product 999 does not exist", appErr.Message)

	appErr = FromDomainError(&shared.TransactionError{Collections: []string{"orders"}, Err: stdErrors.New("deadlock")})
	assert.Equal(t, CodeTransactionFailure, appErr.Code)
}

func TestFromDomainErrorKeepsAppError(t *testing.T) {
	original := BadRequest("id must be a number")
	assert.Same(t, original, FromDomainError(fmt.Errorf("wrapped: %w", original)))
	assert.Nil(t, FromDomainError(nil))
	assert.True(t, Is(original, CodeBadRequest))
}
