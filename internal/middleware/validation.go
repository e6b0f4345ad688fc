package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/volunteersync/backend/internal/app/models/dto"
)

// HandleBindingError converts a gin binding failure into a 400 response with
// per-field validation details
func HandleBindingError(c *gin.Context, err error) {
	message := "Invalid request format"

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]dto.ErrorDetail, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, *dto.NewErrorDetail(dto.ErrorCodeValidationFailed,
				formatValidationError(fieldErr)).WithField(fieldErr.Field()))
		}
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse("Validation failed", details...))
		return
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.NewFailureResponse(message, *errorDetail))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gtfield":
		return e.Field() + " must be after " + e.Param()
	case "url":
		return e.Field() + " must be a valid URL"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
