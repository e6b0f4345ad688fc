package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/volunteersync/backend/internal/app/models/dto"
	"github.com/volunteersync/backend/internal/pkg/apperrors"
)

// HandleAPIError converts service errors to HTTP responses. The sentinel
// error picks the status code; a CustomError wrapping the sentinel supplies
// the user-facing message.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()

	respond := func(status int, code dto.ErrorCode) {
		c.JSON(status, dto.NewFailureResponse(message, *dto.NewErrorDetail(code, message)))
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrTaskNotFound,
		apperrors.ErrOrganizationNotFound,
		apperrors.ErrRegistrationNotFound,
		apperrors.ErrNotificationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeResourceNotFound)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden)

	case apperrors.Is(err, apperrors.ErrInvalidCredentials, apperrors.ErrAccountDisabled):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials)

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeExpiredToken)

	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked,
		apperrors.ErrInvalidFormat):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken)

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrAlreadyRegistered,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrOrganizationAlreadyExists,
		apperrors.ErrResourceAlreadyExists):
		respond(http.StatusConflict, dto.ErrorCodeConflict)

	case apperrors.Is(err, apperrors.ErrInvalidState,
		apperrors.ErrTaskFull,
		apperrors.ErrTaskNotAcceptable,
		apperrors.ErrOrganizationHasRelations):
		respond(http.StatusBadRequest, dto.ErrorCodeInvalidState)

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidPassword):
		respond(http.StatusBadRequest, dto.ErrorCodeValidationFailed)

	default:
		message = "Internal server error"
		respond(http.StatusInternalServerError, dto.ErrorCodeInternalServer)
	}
}
