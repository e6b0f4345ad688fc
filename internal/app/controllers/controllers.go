package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/auth"
	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/middleware"
)

// parseIDParam parses a path parameter as an int64 ID. Writes a 400 response
// and returns false when the parameter is not a number.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	idStr := ctx.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		message := "Invalid " + name + " parameter"
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewFailureResponse(message, *errorDetail))
		return 0, false
	}
	return id, true
}

// requirePrincipal fetches the caller's principal from the context. Writes a
// 401 response and returns false when the auth middleware did not run.
func requirePrincipal(ctx *gin.Context) (auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		message := "Authentication required"
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)
		ctx.JSON(http.StatusUnauthorized, dto.NewFailureResponse(message, *errorDetail))
		return auth.Principal{}, false
	}
	return principal, true
}
