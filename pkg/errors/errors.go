package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeRateLimited  = "RATE_LIMITED"
	CodeMediaType    = "UNSUPPORTED_MEDIA_TYPE"
	CodeTooLarge     = "PAYLOAD_TOO_LARGE"
)

const (
	MessageBadRequest     = "Bad Request"
	MessageForbidden      = "Forbidden"
	MessageAuthRequired   = "Authentication required"
	MessageInternalServer = "Internal server error"
)

// AppError is the single error type handlers know how to render. Errors
// holds one message per offending field and is only set for validation and
// conflict failures.
type AppError struct {
	Code       string            `json:"-"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Errors     map[string]string `json:"errors,omitempty"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

// Response is the public body of an AppError. Internal causes never leak.
func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Errors:  e.Errors,
	}
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(e.Response())
	return data
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithErrors(fields map[string]string) *AppError {
	e.Errors = fields
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s couldn't be found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// Validation reports malformed input. fields must carry every invalid field,
// not only the first one found.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    MessageBadRequest,
		HTTPStatus: http.StatusBadRequest,
		Errors:     fields,
	}
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = MessageAuthRequired
	}
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = MessageForbidden
	}
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict reports a request that is well formed but clashes with stored
// state. The status differs per resource for client compatibility: booking
// overlaps answer 403, duplicate reviews and accounts answer 500.
func Conflict(message string, httpStatus int, fields map[string]string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: httpStatus,
		Errors:     fields,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(MessageInternalServer, err)
}
