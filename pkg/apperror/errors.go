package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Recurso no encontrado"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "No autorizado"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Acceso denegado"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Solicitud inválida"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Error interno del servidor"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "No se pudo guardar, intente de nuevo"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Correo o contraseña incorrectos"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Token inválido"}
	ErrServiceUnavailable = &AppError{Code: http.StatusServiceUnavailable, Message: "Servicio no configurado"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Error de validación",
		Errors:  fieldErrors,
	}
}

// NewFieldError creates a validation error for a single field
func NewFieldError(field, message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Errors:  []FieldError{{Field: field, Message: message}},
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a failure reported by an external provider (email, storage)
func NewUpstreamError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible.
// Unknown errors are reported as a generic 500 so driver messages never reach clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}
