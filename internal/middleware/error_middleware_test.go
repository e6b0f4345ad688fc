package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performErrorRequest(t *testing.T, err error) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"task not found", apperrors.ErrTaskNotFound, http.StatusNotFound},
		{"registration not found", apperrors.ErrRegistrationNotFound, http.StatusNotFound},
		{"wrapped not found", apperrors.NewResourceNotFoundError("task not found"), http.StatusNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"forbidden with message", apperrors.NewForbiddenError("task belongs to another organization"), http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account disabled", apperrors.ErrAccountDisabled, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"revoked token", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"already registered", apperrors.ErrAlreadyRegistered, http.StatusConflict},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"wrapped conflict", apperrors.NewConflictError("user is already registered for this task"), http.StatusConflict},
		{"invalid state", apperrors.NewInvalidStateError("registration is not pending"), http.StatusBadRequest},
		{"task full", apperrors.ErrTaskFull, http.StatusBadRequest},
		{"task not acceptable", apperrors.ErrTaskNotAcceptable, http.StatusBadRequest},
		{"organization has relations", apperrors.ErrOrganizationHasRelations, http.StatusBadRequest},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad request", apperrors.NewBadRequestError("taskId is required"), http.StatusBadRequest},
		{"unknown error", fmt.Errorf("network blip"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := performErrorRequest(t, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.False(t, body.IsSuccess)
			require.NotEmpty(t, body.Errors)
		})
	}
}

func TestHandleAPIErrorUsesCustomMessage(t *testing.T) {
	w, body := performErrorRequest(t, apperrors.NewInvalidStateError("cannot delete an approved registration"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cannot delete an approved registration", body.Message)
	assert.Equal(t, string(dto.ErrorCodeInvalidState), string(body.Errors[0].Code))
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	w, body := performErrorRequest(t, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Message, "connection refused")
}
