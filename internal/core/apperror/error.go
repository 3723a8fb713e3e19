// Package apperror defines the error type every service returns to the
// HTTP layer. A code determines the status; details carry the field or
// line that failed.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE_ENTRY"
	CodeIntegrity    = "INTEGRITY_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps each code to the HTTP status it is rendered with.
var statusByCode = map[string]int{
	CodeValidation:   http.StatusBadRequest,
	CodeInvalidInput: http.StatusBadRequest,
	CodeNotFound:     http.StatusNotFound,
	CodeDuplicate:    http.StatusConflict,
	CodeIntegrity:    http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
}

// AppError is a classified failure. Err never reaches the client.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	Err        error          `json:"-"`
}

func newError(code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: statusByCode[code]}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithDetail sets details[key] and returns e for chaining.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// NewValidation reports a business rule violation.
func NewValidation(message string) *AppError {
	return newError(CodeValidation, message)
}

// NewFieldValidation reports a violation attributable to one input field.
func NewFieldValidation(field, message string) *AppError {
	return newError(CodeValidation, message).WithDetail("field", field)
}

// NewInvalidInput reports a request that could not be parsed at all,
// such as a malformed id, date or JSON body.
func NewInvalidInput(message string) *AppError {
	return newError(CodeInvalidInput, message)
}

func NewNotFound(entity string, key any) *AppError {
	return newError(CodeNotFound, entity+" not found").
		WithDetail("entity", entity).
		WithDetail("id", key)
}

func NewDuplicate(entity, field, value string) *AppError {
	return newError(CodeDuplicate, fmt.Sprintf("%s with this %s already exists", entity, field)).
		WithDetail("entity", entity).
		WithDetail("field", field).
		WithDetail("value", value)
}

// NewIntegrity reports a write rejected by a foreign key the schema does
// not cascade.
func NewIntegrity(message string) *AppError {
	return newError(CodeIntegrity, message)
}

// NewInternal hides err behind a generic message.
func NewInternal(err error) *AppError {
	return newError(CodeInternal, "Internal server error").WithCause(err)
}

// AsAppError finds the first *AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// GetHTTPStatus is 500 for anything that is not an *AppError.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool   { return hasCode(err, CodeNotFound) }
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }
func IsIntegrity(err error) bool  { return hasCode(err, CodeIntegrity) }

func hasCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
