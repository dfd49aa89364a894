package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondSuccess writes {"success": true} merged with payload.
func RespondSuccess(c *gin.Context, code int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIError{
		Success: false,
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondBindError renders a request binding failure as a 400 with one
// message per invalid field.
func RespondBindError(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, DescribeBindError(err))
}

func DescribeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return "Validation error: " + strings.Join(msgs, "; ")
}

func describeField(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte", "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// HandleServiceError maps an error returned by a service to a JSON response.
// Messages of internal and upstream failures never reach the client.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *AppError
	message := "Internal server error"
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		RespondError(c, http.StatusBadRequest, message)
	case errors.Is(err, ErrAuth):
		RespondError(c, http.StatusUnauthorized, message)
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, message)
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrInternal):
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("trace_id", c.GetString("trace_id")),
			zap.Error(err))
		RespondError(c, http.StatusInternalServerError, message)
	default:
		logger.Error("unexpected error",
			zap.String("path", c.FullPath()),
			zap.String("trace_id", c.GetString("trace_id")),
			zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
