package errorx

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"

	"github.com/gold2201/LocalNetworkProject/internal/i18n"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryValidation     ErrorCategory = "validation"
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryAuthorization  ErrorCategory = "authorization"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryConflict       ErrorCategory = "conflict"
	CategoryInternal       ErrorCategory = "internal"
	CategoryDatabase       ErrorCategory = "database"
)

// Severity represents the severity level of an error
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// FieldError is one untranslated per-field validation message
type FieldError struct {
	MessageID string
	Data      map[string]any
}

// APIError represents a structured API error.
// MessageID and Fields are translated into Message and details.fields
// when the error is rendered.
type APIError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Category   ErrorCategory  `json:"category"`
	Severity   Severity       `json:"severity"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	TraceID    string         `json:"trace_id,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`

	MessageID   string                `json:"-"`
	MessageData map[string]any        `json:"-"`
	Fields      map[string]FieldError `json:"-"`

	cause error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Code, e.Category, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// Unwrap exposes the underlying error for errors.Is/As and logging
func (e *APIError) Unwrap() error {
	return e.cause
}

// JSON returns the error as a JSON string
func (e *APIError) JSON() string {
	out, _ := json.Marshal(e)
	return string(out)
}

// Clone returns a deep enough copy that callers can decorate freely
func (e *APIError) Clone() *APIError {
	cp := *e
	cp.Details = maps.Clone(e.Details)
	cp.MessageData = maps.Clone(e.MessageData)
	cp.Fields = maps.Clone(e.Fields)
	return &cp
}

// WithDetail adds a detail to the error
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithMessage overrides the message ID used for translation
func (e *APIError) WithMessage(msgID string, data map[string]any) *APIError {
	e.MessageID = msgID
	e.MessageData = data
	return e
}

// WithCause records the underlying error; it is logged, never rendered
func (e *APIError) WithCause(err error) *APIError {
	e.cause = err
	return e
}

// WithTraceID adds a trace ID to the error
func (e *APIError) WithTraceID(traceID string) *APIError {
	e.TraceID = traceID
	return e
}

// Templates. Use the constructors below, which clone them.
var (
	// Validation Errors (E1000-E1999)
	ErrInvalidInput = &APIError{
		Code:       "E1001",
		Message:    "Validation failed",
		Category:   CategoryValidation,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusBadRequest,
		MessageID:  i18n.MsgErrorValidation,
	}

	// Authentication Errors (E2000-E2999)
	ErrUnauthorized = &APIError{
		Code:       "E2001",
		Message:    "Authentication required",
		Category:   CategoryAuthentication,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusUnauthorized,
		MessageID:  i18n.MsgErrorUnauthorized,
	}

	ErrInvalidCredentials = &APIError{
		Code:       "E2002",
		Message:    "Invalid username or password",
		Category:   CategoryAuthentication,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusUnauthorized,
		MessageID:  i18n.MsgErrorInvalidCredentials,
	}

	// Authorization Errors (E3000-E3999)
	ErrForbidden = &APIError{
		Code:       "E3001",
		Message:    "Access denied",
		Category:   CategoryAuthorization,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusForbidden,
		MessageID:  i18n.MsgErrorForbidden,
	}

	// Not Found Errors (E4000-E4089)
	ErrResourceNotFound = &APIError{
		Code:       "E4001",
		Message:    "Requested resource not found",
		Category:   CategoryNotFound,
		Severity:   SeverityInfo,
		HTTPStatus: http.StatusNotFound,
		MessageID:  i18n.MsgErrorNotFound,
	}

	// Conflict Errors (E4090-E4099)
	ErrResourceExists = &APIError{
		Code:       "E4091",
		Message:    "Resource already exists",
		Category:   CategoryConflict,
		Severity:   SeverityWarning,
		HTTPStatus: http.StatusConflict,
		MessageID:  i18n.MsgErrorConflict,
	}

	// Internal Server Errors (E5000-E5999)
	ErrPanic = &APIError{
		Code:       "E5000",
		Message:    "Internal server error occurred",
		Category:   CategoryInternal,
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusInternalServerError,
		MessageID:  i18n.MsgErrorPanic,
	}

	ErrInternalServer = &APIError{
		Code:       "E5001",
		Message:    "Internal server error occurred",
		Category:   CategoryInternal,
		Severity:   SeverityCritical,
		HTTPStatus: http.StatusInternalServerError,
		MessageID:  i18n.MsgErrorInternal,
	}

	ErrQueryExecution = &APIError{
		Code:       "E5002",
		Message:    "Query execution failed",
		Category:   CategoryDatabase,
		Severity:   SeverityError,
		HTTPStatus: http.StatusInternalServerError,
		MessageID:  i18n.MsgErrorQueryExecution,
	}
)

// ValidationError creates a validation error carrying per-field messages
func ValidationError(fields map[string]FieldError) *APIError {
	e := ErrInvalidInput.Clone()
	e.Fields = fields
	return e
}

// FieldValidationError is ValidationError for a single field
func FieldValidationError(field, msgID string, data map[string]any) *APIError {
	return ValidationError(map[string]FieldError{field: {MessageID: msgID, Data: data}})
}

// NotFoundError creates a not found error for a specific resource
func NotFoundError(resourceType string, identifier any) *APIError {
	return ErrResourceNotFound.Clone().
		WithDetail("resource_type", resourceType).
		WithDetail("identifier", fmt.Sprint(identifier))
}

// ConflictError creates a conflict error with a specific message
func ConflictError(msgID string, cause error) *APIError {
	e := ErrResourceExists.Clone().WithCause(cause)
	if msgID != "" {
		e.MessageID = msgID
	}
	return e
}

// QueryExecutionError wraps a database failure from the console.
// The database message is part of the response.
func QueryExecutionError(cause error) *APIError {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return ErrQueryExecution.Clone().
		WithCause(cause).
		WithMessage(i18n.MsgErrorQueryExecution, map[string]any{"Reason": reason}).
		WithDetail("database_error", reason)
}

// UnauthorizedError creates a 401 error
func UnauthorizedError() *APIError {
	return ErrUnauthorized.Clone()
}

// InvalidCredentialsError creates a 401 error for a failed login
func InvalidCredentialsError() *APIError {
	return ErrInvalidCredentials.Clone()
}

// ForbiddenError creates a 403 error
func ForbiddenError() *APIError {
	return ErrForbidden.Clone()
}

// InternalError creates a generic 500 error; the cause is logged only
func InternalError(cause error) *APIError {
	return ErrInternalServer.Clone().WithCause(cause)
}
