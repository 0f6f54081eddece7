package errors

import (
	"encoding/json"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)

func fixedClassifier() *Classifier {
	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	return &Classifier{Builder: Builder{Clock: func() time.Time { return fixed }}}
}

func messages(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Message)
	}

	return out
}

func TestClassify_StatusPerVariant(t *testing.T) {
	tests := []struct {
		name     string
		failure  Failure
		status   Status
		wireName string
		messages []string
	}{
		{
			name:     "validation with explicit errors",
			failure:  Validation("name is required"),
			status:   StatusBadRequest,
			wireName: "BAD_REQUEST",
			messages: []string{"name is required"},
		},
		{
			name: "validation with raw violations",
			failure: &ValidationError{Violations: []Violation{
				{Message: "must be positive", Field: "age", Value: -1},
				{Message: `{"errorMessage":"bad"}`},
			}},
			status:   StatusBadRequest,
			wireName: "BAD_REQUEST",
			messages: []string{"age value:-1 is not valid", "bad"},
		},
		{
			name:     "data not found",
			failure:  NotFound("user 7 not found"),
			status:   StatusNotFound,
			wireName: "NOT_FOUND",
			messages: []string{"user 7 not found"},
		},
		{
			name:     "unauthorized",
			failure:  Unauthorized("token expired"),
			status:   StatusUnauthorized,
			wireName: "UNAUTHORIZED",
			messages: []string{"token expired"},
		},
		{
			name:     "access denied",
			failure:  AccessDenied("admins only"),
			status:   StatusForbidden,
			wireName: "FORBIDDEN",
			messages: []string{"admins only"},
		},
		{
			name:     "server error",
			failure:  Internal(stderrors.New("disk full"), "could not save"),
			status:   StatusInternalServerError,
			wireName: "INTERNAL_SERVER_ERROR",
			messages: []string{"could not save"},
		},
		{
			name:     "timeout",
			failure:  Timeout("upstream took too long"),
			status:   StatusGatewayTimeout,
			wireName: "GATEWAY_TIMEOUT",
			messages: []string{"upstream took too long"},
		},
		{
			name:     "route not found",
			failure:  &RouteNotFoundError{Method: "GET", Path: "/missing"},
			status:   StatusNotFound,
			wireName: "NOT_FOUND",
			messages: []string{"No handler found for GET /missing"},
		},
		{
			name:     "missing parameter",
			failure:  MissingParameter("page", "int"),
			status:   StatusBadRequest,
			wireName: "BAD_REQUEST",
			messages: []string{"Required request parameter 'page' for method parameter type int is not present"},
		},
		{
			name:     "unsupported media type",
			failure:  UnsupportedMediaType("text/plain"),
			status:   StatusBadRequest,
			wireName: "BAD_REQUEST",
			messages: []string{"Content type 'text/plain' not supported"},
		},
		{
			name:     "resource access",
			failure:  &ResourceAccessError{Message: "connection refused"},
			status:   StatusInternalServerError,
			wireName: "INTERNAL_SERVER_ERROR",
			messages: []string{"connection refused"},
		},
		{
			name:     "unclassified",
			failure:  &UnclassifiedError{Err: stderrors.New("nil map write")},
			status:   StatusInternalServerError,
			wireName: "INTERNAL_SERVER_ERROR",
			messages: []string{MessageUnexpected},
		},
	}

	cls := fixedClassifier()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := cls.Classify(tt.failure, Request{Method: "GET", Path: "/api/v1/things"})

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.wireName, resp.StatusCode)
			assert.Equal(t, tt.messages, messages(resp.Errors))
			assert.Equal(t, "GET", resp.Method)
			assert.Equal(t, "/api/v1/things", resp.RequestURI)
			assert.Equal(t, "2024-03-09T14:05:07", resp.Timestamp)
		})
	}
}

func TestClassify_DefaultMessagesWhenListEmpty(t *testing.T) {
	tests := []struct {
		failure Failure
		message string
	}{
		{Timeout(), MessageTimeout},
		{AccessDenied(), MessageAccessDenied},
		{Unauthorized(), MessageUnauthorized},
		{NotFound(), MessageNotFound},
		{Validation(), MessageValidation},
		{Internal(nil), MessageServerError},
		{&UnclassifiedError{}, MessageUnexpected},
	}

	cls := fixedClassifier()

	for _, tt := range tests {
		t.Run(tt.failure.Kind().String(), func(t *testing.T) {
			_, resp := cls.Classify(tt.failure, Request{})
			assert.Equal(t, []string{tt.message}, messages(resp.Errors))
		})
	}
}

func TestClassify_ErrorsNeverEmpty(t *testing.T) {
	cls := fixedClassifier()

	for _, f := range []Failure{
		&ValidationError{},
		&NotFoundError{},
		&MalformedRequestError{},
		ConstraintViolations(),
		&ResourceAccessError{},
		&RouteNotFoundError{},
		nil,
	} {
		_, resp := cls.Classify(f, Request{})
		assert.NotEmpty(t, resp.Errors)
	}
}

func TestClassify_DataNotFoundEndToEnd(t *testing.T) {
	cls := NewClassifier()

	status, resp := cls.Classify(NotFound("user 42 not found"), Request{Method: "GET", Path: "/users/42"})
	assert.Equal(t, 404, status.Code())

	body, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, "GET", decoded["method"])
	assert.Equal(t, "/users/42", decoded["requestUri"])
	assert.Equal(t, "NOT_FOUND", decoded["statusCode"])
	assert.Regexp(t, timestampPattern, decoded["timestamp"])
	assert.Equal(t, []any{map[string]any{"errorMessage": "user 42 not found"}}, decoded["errors"])
}

func TestClassify_DeduplicatesExplicitErrors(t *testing.T) {
	_, resp := fixedClassifier().Classify(Validation("dup", "dup", "other"), Request{})
	assert.ElementsMatch(t, []string{"dup", "other"}, messages(resp.Errors))
}

func TestClassify_UnreadableBodyIsTruncated(t *testing.T) {
	f := UnreadableBody(stderrors.New("invalid character 'x' looking for beginning of value"))

	_, resp := fixedClassifier().Classify(f, Request{Method: "POST", Path: "/api/v1/users"})
	assert.Equal(t, []string{"JSON parse error"}, messages(resp.Errors))
}

func TestClassify_ConstraintViolations(t *testing.T) {
	f := ConstraintViolations("id must be positive", "name must not be blank", "id must be positive")

	status, resp := fixedClassifier().Classify(f, Request{})
	assert.Equal(t, StatusBadRequest, status)
	assert.ElementsMatch(t, []string{"id must be positive", "name must not be blank"}, messages(resp.Errors))
}

func TestClassify_LegacyMalformedMessage(t *testing.T) {
	cls := fixedClassifier()
	cls.LegacyMalformedMessage = true

	for _, f := range []Failure{
		MissingParameter("page", "int"),
		MissingHeader("X-Tenant"),
		UnsupportedMediaType("text/plain"),
		UnreadableBody(stderrors.New("unexpected EOF")),
		ConstraintViolations("id must be positive"),
	} {
		status, resp := cls.Classify(f, Request{})
		assert.Equal(t, StatusBadRequest, status)
		assert.Equal(t, []string{MessageAccessDenied}, messages(resp.Errors))
	}
}

func TestClassify_MissingRequestMetadata(t *testing.T) {
	_, resp := fixedClassifier().Classify(NotFound("x"), Request{})

	assert.Empty(t, resp.Method)
	assert.Equal(t, "", resp.RequestURI)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"method":null`)
	assert.Contains(t, string(body), `"requestUri":""`)
}

func TestTruncateAtSeparator(t *testing.T) {
	assert.Equal(t, "JSON parse error", TruncateAtSeparator("JSON parse error: unexpected EOF"))
	assert.Equal(t, "no separator", TruncateAtSeparator("no separator"))
	assert.Equal(t, "", TruncateAtSeparator(":leading"))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "GATEWAY_TIMEOUT", StatusGatewayTimeout.Name())
	assert.Equal(t, 504, StatusGatewayTimeout.Code())
	assert.Equal(t, "INTERNAL_SERVER_ERROR", Status(418).Name())
}

func TestClassify_TypedNilVariants(t *testing.T) {
	var (
		notFound   *NotFoundError
		validation *ValidationError
		malformed  *MalformedRequestError
		route      *RouteNotFoundError
	)

	for _, f := range []Failure{notFound, validation, malformed, route} {
		assert.NotPanics(t, func() {
			status, resp := fixedClassifier().Classify(f, Request{Method: "GET", Path: "/x"})
			assert.Equal(t, StatusInternalServerError, status)
			assert.Equal(t, Records(MessageUnexpected), resp.Errors)
		})
	}
}
