package errors

import (
	"fmt"
	"strings"
)

// Failure is a classified error condition. The set of implementations is closed:
// only the variants declared in this file satisfy it.
type Failure interface {
	error
	Kind() Kind
	failure()
}

// builds a record list from plain messages
func Records(messages ...string) []Record {
	records := make([]Record, 0, len(messages))
	for _, msg := range messages {
		records = append(records, Record{Message: msg})
	}

	return records
}

func joinRecords(prefix string, records []Record) string {
	if len(records) == 0 {
		return prefix
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		parts = append(parts, r.Message)
	}

	return prefix + ": " + strings.Join(parts, "; ")
}

// raised by application code for invalid input; Violations holds raw binding
// failures that still need extracting when Errors is empty
type ValidationError struct {
	Errors     []Record
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 && len(e.Violations) > 0 {
		return fmt.Sprintf("validation failed: %d violation(s)", len(e.Violations))
	}

	return joinRecords("validation failed", e.Errors)
}

func (e *ValidationError) Kind() Kind { return KindValidation }
func (*ValidationError) failure()     {}

type NotFoundError struct {
	Errors []Record
}

func (e *NotFoundError) Error() string { return joinRecords("data not found", e.Errors) }
func (e *NotFoundError) Kind() Kind    { return KindDataNotFound }
func (*NotFoundError) failure()        {}

type UnauthorizedError struct {
	Errors []Record
	Err    error
}

func (e *UnauthorizedError) Error() string { return joinRecords("unauthorized", e.Errors) }
func (e *UnauthorizedError) Unwrap() error { return e.Err }
func (e *UnauthorizedError) Kind() Kind    { return KindUnauthorized }
func (*UnauthorizedError) failure()        {}

type AccessDeniedError struct {
	Errors []Record
}

func (e *AccessDeniedError) Error() string { return joinRecords("access denied", e.Errors) }
func (e *AccessDeniedError) Kind() Kind    { return KindAccessDenied }
func (*AccessDeniedError) failure()        {}

type ServerError struct {
	Errors []Record
	Err    error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return joinRecords("server error", e.Errors) + ": " + e.Err.Error()
	}

	return joinRecords("server error", e.Errors)
}

func (e *ServerError) Unwrap() error { return e.Err }
func (e *ServerError) Kind() Kind    { return KindServerError }
func (*ServerError) failure()        {}

type TimeoutError struct {
	Errors []Record
	Err    error
}

func (e *TimeoutError) Error() string { return joinRecords("timeout", e.Errors) }
func (e *TimeoutError) Unwrap() error { return e.Err }
func (e *TimeoutError) Kind() Kind    { return KindTimeout }
func (*TimeoutError) failure()        {}

// raised at the framework boundary when a request cannot be read or is incomplete
type MalformedRequestError struct {
	Cause   MalformedCause
	Message string
	// constraint violation messages, used when Cause is CauseConstraintViolation
	Violations []string
	Err        error
}

func (e *MalformedRequestError) Error() string {
	if e.Cause == CauseConstraintViolation && len(e.Violations) > 0 {
		return "constraint violation: " + strings.Join(e.Violations, "; ")
	}

	return e.Message
}

func (e *MalformedRequestError) Unwrap() error { return e.Err }
func (e *MalformedRequestError) Kind() Kind    { return KindRequestMalformed }
func (*MalformedRequestError) failure()        {}

// raised when a downstream resource (HTTP service, socket) could not be reached
type ResourceAccessError struct {
	Message string
	Err     error
}

func (e *ResourceAccessError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

func (e *ResourceAccessError) Unwrap() error { return e.Err }
func (e *ResourceAccessError) Kind() Kind    { return KindResourceAccess }
func (*ResourceAccessError) failure()        {}

type RouteNotFoundError struct {
	Method string
	Path   string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("No handler found for %s %s", e.Method, e.Path)
}

func (e *RouteNotFoundError) Kind() Kind { return KindRouteNotFound }
func (*RouteNotFoundError) failure()     {}

// wraps any error nothing else could classify
type UnclassifiedError struct {
	Err error
}

func (e *UnclassifiedError) Error() string {
	if e.Err == nil {
		return "unclassified error"
	}

	return e.Err.Error()
}

func (e *UnclassifiedError) Unwrap() error { return e.Err }
func (e *UnclassifiedError) Kind() Kind    { return KindUnclassified }
func (*UnclassifiedError) failure()        {}

// constructors for the common cases

func Validation(messages ...string) *ValidationError {
	return &ValidationError{Errors: Records(messages...)}
}

func NotFound(messages ...string) *NotFoundError {
	return &NotFoundError{Errors: Records(messages...)}
}

func Unauthorized(messages ...string) *UnauthorizedError {
	return &UnauthorizedError{Errors: Records(messages...)}
}

func AccessDenied(messages ...string) *AccessDeniedError {
	return &AccessDeniedError{Errors: Records(messages...)}
}

func Internal(err error, messages ...string) *ServerError {
	return &ServerError{Errors: Records(messages...), Err: err}
}

func Timeout(messages ...string) *TimeoutError {
	return &TimeoutError{Errors: Records(messages...)}
}

func Malformed(cause MalformedCause, message string) *MalformedRequestError {
	return &MalformedRequestError{Cause: cause, Message: message}
}

func ConstraintViolations(messages ...string) *MalformedRequestError {
	return &MalformedRequestError{Cause: CauseConstraintViolation, Violations: messages}
}

func MissingParameter(name, typ string) *MalformedRequestError {
	return Malformed(CauseMissingParameter,
		fmt.Sprintf("Required request parameter '%s' for method parameter type %s is not present", name, typ))
}

func MissingHeader(name string) *MalformedRequestError {
	return Malformed(CauseMissingHeader,
		fmt.Sprintf("Required request header '%s' for method parameter type String is not present", name))
}

func UnsupportedMediaType(contentType string) *MalformedRequestError {
	return Malformed(CauseUnsupportedMediaType, fmt.Sprintf("Content type '%s' not supported", contentType))
}

func TypeMismatch(value string, err error) *MalformedRequestError {
	return &MalformedRequestError{
		Cause:   CauseTypeMismatch,
		Message: fmt.Sprintf("Failed to convert value %q to required type", value),
		Err:     err,
	}
}

func UnreadableBody(err error) *MalformedRequestError {
	return &MalformedRequestError{
		Cause:   CauseUnreadableBody,
		Message: "JSON parse error: " + err.Error(),
		Err:     err,
	}
}
