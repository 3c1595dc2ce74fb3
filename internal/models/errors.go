package models

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// AppError is a domain error carrying the HTTP status it maps to.
type AppError struct {
	Status  int
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

// NewValidationError reports missing or malformed input (400).
func NewValidationError(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

// NewNotFoundError reports a missing record (404).
func NewNotFoundError(resource string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: resource + " not found"}
}

// NewUnauthorizedError reports a missing or invalid session (401).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// NewForbiddenError reports an action on another owner's resource (403).
func NewForbiddenError(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

// NewConflictError reports a uniqueness violation such as a duplicate email (409).
func NewConflictError(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// NewInternalError wraps an unclassified failure (500).
func NewInternalError(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Internal server error", Err: err}
}

// RespondWithError writes the standardized error envelope. The stack trace is
// included only outside production, and only for server-side failures.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Message: err.Error()}

	if appErr, ok := err.(*AppError); ok {
		status = appErr.Status
		response.Message = appErr.Message
	}

	if os.Getenv("APP_ENV") != "production" && status >= fiber.StatusInternalServerError {
		response.Stack = string(debug.Stack())
	}

	return c.Status(status).JSON(response)
}
