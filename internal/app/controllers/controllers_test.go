package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantID int64
		wantOK bool
	}{
		{"valid id", "42", 42, true},
		{"not a number", "abc", 0, false},
		{"zero", "0", 0, false},
		{"negative", "-5", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestRequirePrincipal(t *testing.T) {
	// Missing principal writes 401
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	_, ok := requirePrincipal(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Principal set by the middleware is returned as-is
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Set("principal", auth.Principal{UserID: 7, Role: models.RoleUser})

	principal, ok := requirePrincipal(c)
	assert.True(t, ok)
	assert.Equal(t, int64(7), principal.UserID)
	assert.Equal(t, models.RoleUser, principal.Role)
}
