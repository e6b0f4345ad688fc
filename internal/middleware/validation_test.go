package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volunteersync/backend/internal/app/models/dto"
)

func bindAndHandle(t *testing.T, payload string, target interface{}) (*httptest.ResponseRecorder, dto.APIResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	err := c.ShouldBindJSON(target)
	require.Error(t, err)
	HandleBindingError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleBindingErrorReportsMissingFields(t *testing.T) {
	var req dto.CreateRegistrationRequest
	w, body := bindAndHandle(t, `{}`, &req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.IsSuccess)
	assert.Equal(t, "Validation failed", body.Message)
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "TaskID", body.Errors[0].Field)
	assert.Contains(t, body.Errors[0].Message, "required")
}

func TestHandleBindingErrorReportsOneofViolation(t *testing.T) {
	var req dto.UpdateRegistrationStatusRequest
	w, body := bindAndHandle(t, `{"status":"MAYBE"}`, &req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "Status", body.Errors[0].Field)
	assert.Contains(t, body.Errors[0].Message, "must be one of")
}

func TestHandleBindingErrorMalformedJSON(t *testing.T) {
	var req dto.LoginRequest
	w, body := bindAndHandle(t, `{"email":`, &req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", body.Message)
}
