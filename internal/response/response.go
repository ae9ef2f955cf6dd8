package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeArtifact      = "ARTIFACT_ERROR"
)

// AppError is the error type returned by the service layer
type AppError struct {
	Code    string
	Message string
	Details string
	// Fields carries per-attribute validation messages
	Fields map[string][]string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError
func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewFieldValidationError creates a validation AppError carrying an attribute error map
func NewFieldValidationError(message string, fields map[string][]string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Fields: fields}
}

// NewNotFoundError creates a not-found AppError
func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

// NewForbiddenError creates a forbidden AppError
func NewForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, "")
}

// Envelope is the uniform body every mutating endpoint answers with
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	FormID  uint        `json:"formId,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse wraps read-only payloads
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is returned for failures that are not field validation errors
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   interface{} `json:"error"`
	Errors  interface{} `json:"errors,omitempty"`
}

// ErrorDetail is the error payload inside ErrorResponse
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendSuccess sends a success response with data
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Success: true, Data: data})
}

// SendEnvelope sends the mutating-endpoint envelope as is
func SendEnvelope(c *gin.Context, status int, env Envelope) {
	c.JSON(status, env)
}

// SendError sends an error response
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Code: code, Message: message},
		Errors:  []string{message},
	})
}

// SendFieldErrors sends a validation failure with the attribute error map
func SendFieldErrors(c *gin.Context, status int, fields map[string][]string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error:   ErrorDetail{Code: ErrCodeValidation, Message: "Validation failed"},
		Errors:  fields,
	})
}
