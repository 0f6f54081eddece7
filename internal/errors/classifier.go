package errors

import (
	"reflect"
	"strings"
)

// canned messages
const (
	MessageUnexpected    = "Unexpected error occurred"
	MessageTimeout       = "Timeout while processing the request"
	MessageAccessDenied  = ": Authorization token is not valid"
	MessageUnauthorized  = ": User is not Authorization"
	MessageValidation    = "Request validation failed"
	MessageNotFound      = "Requested data not found"
	MessageServerError   = "Internal server error"
	MessageMalformed     = "Malformed request"
	MessageResourceError = "Resource access failed"
)

// separates the summary of a body parse error from parser internals
const parseErrorSeparator = ":"

// maps failures to a status and a response record. It holds no mutable state and
// is safe for concurrent use.
type Classifier struct {
	Builder Builder

	// reproduces the legacy behavior of answering every malformed request with
	// MessageAccessDenied instead of the per-cause message
	LegacyMalformedMessage bool
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// returns the transport status and the response for f
func (cls *Classifier) Classify(f Failure, req Request) (Status, Response) {
	status, records, fallback := cls.resolve(f)
	return status, cls.Builder.Build(status, req, records, fallback)
}

func (cls *Classifier) resolve(f Failure) (Status, []Record, string) {
	if isNilFailure(f) {
		return StatusInternalServerError, Records(MessageUnexpected), MessageUnexpected
	}

	switch e := f.(type) {
	case *ValidationError:
		if len(e.Errors) == 0 && len(e.Violations) > 0 {
			return StatusBadRequest, Extract(e.Violations).Records(), MessageValidation
		}
		return StatusBadRequest, e.Errors, MessageValidation

	case *NotFoundError:
		return StatusNotFound, e.Errors, MessageNotFound

	case *UnauthorizedError:
		return StatusUnauthorized, e.Errors, MessageUnauthorized

	case *AccessDeniedError:
		return StatusForbidden, e.Errors, MessageAccessDenied

	case *ServerError:
		return StatusInternalServerError, e.Errors, MessageServerError

	case *TimeoutError:
		return StatusGatewayTimeout, e.Errors, MessageTimeout

	case *RouteNotFoundError:
		return StatusNotFound, Records(e.Error()), MessageNotFound

	case *MalformedRequestError:
		if cls.LegacyMalformedMessage {
			return StatusBadRequest, Records(MessageAccessDenied), MessageMalformed
		}
		return StatusBadRequest, malformedRecords(e), MessageMalformed

	case *ResourceAccessError:
		return StatusInternalServerError, nonEmpty(e.Error()), MessageResourceError

	case *UnclassifiedError:
		return StatusInternalServerError, Records(MessageUnexpected), MessageUnexpected

	default:
		return StatusInternalServerError, Records(MessageUnexpected), MessageUnexpected
	}
}

func malformedRecords(e *MalformedRequestError) []Record {
	switch e.Cause {
	case CauseConstraintViolation:
		return Records(e.Violations...)
	case CauseUnreadableBody:
		return nonEmpty(TruncateAtSeparator(e.Message))
	default:
		return nonEmpty(e.Message)
	}
}

// keeps the part of msg before the first ':' so parser internals are not exposed
func TruncateAtSeparator(msg string) string {
	before, _, _ := strings.Cut(msg, parseErrorSeparator)
	return before
}

func nonEmpty(msg string) []Record {
	if msg == "" {
		return nil
	}

	return Records(msg)
}

// reports whether f is nil or a nil pointer to one of the variants
func isNilFailure(f Failure) bool {
	if f == nil {
		return true
	}

	rv := reflect.ValueOf(f)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
