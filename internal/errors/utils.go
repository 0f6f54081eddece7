package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// postgres error codes that describe bad client input rather than a server fault
const (
	pgUniqueViolation     = "23505"
	pgInvalidTextRepr     = "22P02"
	pgStringTruncation    = "22001"
	pgNumericOutOfRange   = "22003"
	pgForeignKeyViolation = "23503"
)

// translates any error into a Failure. Failures pass through unchanged, errors
// from the libraries used by handlers are mapped to the matching variant and
// anything else becomes Unclassified.
func FromError(err error) Failure {
	if err == nil {
		return &UnclassifiedError{Err: errors.New("nil error")}
	}

	if f, ok := asFailure(err); ok {
		if isNilFailure(f) {
			return &UnclassifiedError{Err: errors.New("nil failure")}
		}
		return f
	}

	// binding and validation
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return &ValidationError{Violations: violationsFrom(validationErrs)}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &maxBytesErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return UnreadableBody(err)
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return TypeMismatch(numErr.Num, err)
	}

	// auth
	if isTokenError(err) {
		return &UnauthorizedError{Errors: Records("invalid or expired token"), Err: err}
	}

	// database
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(MessageNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(pgErr)
	}

	// deadlines
	// a cancelled context is the client going away, not a timeout
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Errors: Records(MessageTimeout), Err: err}
	}

	// downstream resources
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &ResourceAccessError{
			Message: fmt.Sprintf("I/O error on %s request for %q: %v", strings.ToUpper(urlErr.Op), urlErr.URL, urlErr.Err),
			Err:     err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ResourceAccessError{Message: err.Error(), Err: err}
	}

	return &UnclassifiedError{Err: err}
}

func asFailure(err error) (Failure, bool) {
	var (
		validationErr   *ValidationError
		notFoundErr     *NotFoundError
		unauthorizedErr *UnauthorizedError
		accessErr       *AccessDeniedError
		serverErr       *ServerError
		timeoutErr      *TimeoutError
		malformedErr    *MalformedRequestError
		resourceErr     *ResourceAccessError
		routeErr        *RouteNotFoundError
		unclassifiedErr *UnclassifiedError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr, true
	case errors.As(err, &notFoundErr):
		return notFoundErr, true
	case errors.As(err, &unauthorizedErr):
		return unauthorizedErr, true
	case errors.As(err, &accessErr):
		return accessErr, true
	case errors.As(err, &serverErr):
		return serverErr, true
	case errors.As(err, &timeoutErr):
		return timeoutErr, true
	case errors.As(err, &malformedErr):
		return malformedErr, true
	case errors.As(err, &resourceErr):
		return resourceErr, true
	case errors.As(err, &routeErr):
		return routeErr, true
	case errors.As(err, &unclassifiedErr):
		return unclassifiedErr, true
	}

	return nil, false
}

func violationsFrom(errs validator.ValidationErrors) []Violation {
	violations := make([]Violation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, Violation{
			Message: fe.Error(),
			Field:   fe.Field(),
			Value:   fe.Value(),
		})
	}

	return violations
}

func isTokenError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenExpired,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenInvalidClaims,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func fromPgError(pgErr *pgconn.PgError) Failure {
	switch pgErr.Code {
	case pgUniqueViolation:
		return Validation("duplicate value violates unique constraint")
	case pgForeignKeyViolation:
		return Validation("referenced record does not exist")
	case pgInvalidTextRepr:
		return Validation("invalid input syntax")
	case pgStringTruncation:
		return Validation("value too long")
	case pgNumericOutOfRange:
		return Validation("numeric value out of range")
	default:
		return Internal(pgErr, "database operation failed")
	}
}
