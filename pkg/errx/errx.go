package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport-independent handling
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error kind within a registry
type Code struct {
	registry   *Registry
	key        string
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain, namespaced by prefix
type Registry struct {
	prefix string
	codes  map[string]*Code
}

// NewRegistry creates an error registry with the given domain prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]*Code),
	}
}

// Register adds an error code to the registry
func (r *Registry) Register(key string, t Type, httpStatus int, message string) *Code {
	c := &Code{
		registry:   r,
		key:        key,
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	r.codes[key] = c
	return c
}

// New creates an error for a registered code
func (r *Registry) New(code *Code) *Error {
	return &Error{
		Code:       r.prefix + "_" + code.key,
		Type:       code.errType,
		HTTPStatus: code.httpStatus,
		Message:    code.message,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying cause
func (r *Registry) NewWithCause(code *Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Error is a structured application error
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two registry errors by code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail attaches a single key/value detail
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple details at once
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse returns the JSON body served to API clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type
func Wrap(err error, message string, t Type) *Error {
	status := http.StatusInternalServerError
	switch t {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	}
	return &Error{
		Code:       "WRAPPED_" + string(t),
		Type:       t,
		HTTPStatus: status,
		Message:    message,
		Cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}
