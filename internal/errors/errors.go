package errors

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"codeberg.org/algorave/errorhandler/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Return failures with errors.Respond(c, err) or c.Error(err) followed by return
//   - Respond logs and writes the response, never log the same error again
//   - Use the variant constructors (errors.NotFound, errors.Validation, ...) when the
//     handler knows what went wrong, pass library errors through untouched otherwise
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the handler decide how to respond
//   - Do not log errors in non-handler code (avoid double logging)

const classifierKey = "errors.classifier"

// installs the classifier, recovers panics and translates the last error
// attached with c.Error into a response
func Handler(cls *Classifier) gin.HandlerFunc {
	if cls == nil {
		cls = NewClassifier()
	}

	UseWireFieldNames()

	return func(c *gin.Context) {
		c.Set(classifierKey, cls)

		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
				panic(r)
			}

			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}

			logger.Error("recovered from panic",
				"error", err,
				"stack", string(debug.Stack()),
				"path", requestPath(c),
				"method", requestMethod(c),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			Respond(c, &UnclassifiedError{Err: err})
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		Respond(c, c.Errors.Last().Err)
	}
}

// translates err, logs it and writes the error response
func Respond(c *gin.Context, err error) {
	failure := FromError(err)
	status, response := classifier(c).Classify(failure, RequestFrom(c))

	logFailure(c, failure, status)
	recordSpan(c, failure, status)

	c.AbortWithStatusJSON(status.Code(), response)
}

// handler for unmatched routes and methods
func NoRoute(c *gin.Context) {
	Respond(c, &RouteNotFoundError{Method: requestMethod(c), Path: requestPath(c)})
}

// extracts request metadata from the gin context
func RequestFrom(c *gin.Context) Request {
	return Request{Method: requestMethod(c), Path: requestPath(c)}
}

// binds the JSON body into obj, responding with a failure when binding fails
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		Respond(c, err)
		return false
	}

	return true
}

// binds query parameters into obj, responding with a failure when binding fails
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		Respond(c, err)
		return false
	}

	return true
}

// returns a required query parameter or responds with a missing parameter failure
func RequireQuery(c *gin.Context, name string) (string, bool) {
	value, ok := c.GetQuery(name)
	if !ok {
		Respond(c, MissingParameter(name, "String"))
		return "", false
	}

	return value, true
}

// rejects requests that lack the named header
func RequireHeader(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(name) == "" {
			Respond(c, MissingHeader(name))
			return
		}

		c.Next()
	}
}

// rejects requests with a body whose content type is not one of allowed
func RequireContentType(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		contentType := c.ContentType()
		for _, a := range allowed {
			if contentType == a {
				c.Next()
				return
			}
		}

		Respond(c, UnsupportedMediaType(contentType))
	}
}

// validates a UUID parameter from the request path
func ValidatePathUUID(c *gin.Context, paramName, resource string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		Respond(c, MissingParameter(paramName, "UUID"))
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		Respond(c, NotFound(resource+" "+id+" not found"))
		return "", false
	}

	return id, true
}

func classifier(c *gin.Context) *Classifier {
	if v, ok := c.Get(classifierKey); ok {
		if cls, ok := v.(*Classifier); ok {
			return cls
		}
	}

	return NewClassifier()
}

func requestMethod(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	return c.Request.Method
}

func requestPath(c *gin.Context) string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}

	return c.Request.URL.Path
}

func logFailure(c *gin.Context, failure Failure, status Status) {
	args := []any{
		"kind", failure.Kind().String(),
		"status", status.Code(),
		"path", requestPath(c),
		"method", requestMethod(c),
		"request_id", c.GetString("request_id"),
		"user_id", c.GetString("user_id"),
	}

	if status.Code() >= http.StatusInternalServerError {
		logger.ErrorErr(failure, "request failed", args...)
		return
	}

	logger.Warn("request rejected", append(args, "error", failure.Error())...)
}

func recordSpan(c *gin.Context, failure Failure, status Status) {
	if c.Request == nil {
		return
	}

	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}

	span.RecordError(failure, trace.WithAttributes(
		attribute.String("error.kind", failure.Kind().String()),
	))
	span.SetAttributes(attribute.String("http.error_status", status.Name()))

	if status.Code() >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, status.Name())
	}
}
