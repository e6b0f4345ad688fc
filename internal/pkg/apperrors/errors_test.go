package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMessageAndUnwrap(t *testing.T) {
	err := NewInvalidStateError("cannot delete an approved registration")

	assert.Equal(t, "cannot delete an approved registration", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestCustomErrorFallsBackToWrappedMessage(t *testing.T) {
	err := &CustomError{Err: ErrTaskFull}
	assert.Equal(t, ErrTaskFull.Error(), err.Error())
}

func TestConstructorsWrapTheirSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not found", NewResourceNotFoundError("task not found"), ErrResourceNotFound},
		{"conflict", NewConflictError("already registered"), ErrConflict},
		{"invalid state", NewInvalidStateError("task is full"), ErrInvalidState},
		{"forbidden", NewForbiddenError("not your organization"), ErrPermissionDenied},
		{"bad request", NewBadRequestError("missing organization"), ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestIsMatchesAnyListedError(t *testing.T) {
	wrapped := fmt.Errorf("creating registration: %w", ErrAlreadyRegistered)

	assert.True(t, Is(wrapped, ErrAlreadyRegistered))
	assert.True(t, Is(wrapped, ErrConflict, ErrEmailAlreadyExists, ErrAlreadyRegistered))
	assert.False(t, Is(wrapped, ErrConflict, ErrEmailAlreadyExists))
	assert.False(t, Is(wrapped, ErrTaskNotFound))
}

func TestCustomErrorBuilders(t *testing.T) {
	err := NewCustomError(ErrValidationFailed, "validation failed").
		WithCode("VAL_001").
		WithStatusMsg("Validation failed").
		WithDetails(map[string]interface{}{"field": "email"})

	assert.Equal(t, "VAL_001", err.Code)
	assert.Equal(t, "Validation failed", err.StatusMsg)
	assert.Equal(t, "email", err.Details["field"])
	assert.True(t, errors.Is(err, ErrValidationFailed))
}
