package models

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes form the closed taxonomy used across all layers. Every error
// that reaches the HTTP boundary is translated exactly once, by
// RespondWithError, into a status code derived from its code.
const (
	CodeValidation     = "VALIDATION_ERROR"     // malformed or missing input -> 400
	CodePrecondition   = "PRECONDITION_FAILED"  // semantic validation failure -> 412
	CodeAuthentication = "AUTHENTICATION_ERROR" // missing/expired/forged credential -> 401
	CodeForbidden      = "FORBIDDEN"            // valid principal, wrong owner -> 403
	CodeNotFound       = "NOT_FOUND"            // resource absent -> 404
	CodeConflict       = "CONFLICT"             // uniqueness violation -> 409
	CodeInternal       = "INTERNAL_ERROR"       // unexpected storage/runtime fault -> 500
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewPreconditionError(message string) *AppError {
	return &AppError{Code: CodePrecondition, Message: message}
}

func NewAuthenticationError(message string) *AppError {
	return &AppError{Code: CodeAuthentication, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }
func IsConflict(err error) bool { return HasCode(err, CodeConflict) }

// StatusForError maps an error's taxonomy code to an HTTP status.
// Anything outside the taxonomy is treated as internal.
func StatusForError(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodePrecondition:
		return fiber.StatusPreconditionFailed
	case CodeAuthentication:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError is the single boundary translator: it derives the status
// from the error's code and writes a standardized response. Internal faults
// are logged server-side and never expose details to the caller.
func RespondWithError(c *fiber.Ctx, err error) error {
	status := StatusForError(err)

	var appErr *AppError
	if !errors.As(err, &appErr) || status == fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "internal error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal server error",
			Code:  CodeInternal,
		})
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
