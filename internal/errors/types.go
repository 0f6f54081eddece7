package errors

import (
	"encoding/json"
	"net/http"
)

// a single client-facing error message
type Record struct {
	Message string `json:"errorMessage"`
}

// represents the standardized error response sent to clients
type Response struct {
	Method     string   `json:"-"`
	RequestURI string   `json:"requestUri"`
	StatusCode string   `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Errors     []Record `json:"errors"`
}

// request metadata supplied by the dispatcher, either field may be empty when unavailable
type Request struct {
	Method string
	Path   string
}

// Status is one of the fixed set of HTTP statuses a Response can carry.
type Status int

const (
	StatusBadRequest          Status = http.StatusBadRequest
	StatusUnauthorized        Status = http.StatusUnauthorized
	StatusForbidden           Status = http.StatusForbidden
	StatusNotFound            Status = http.StatusNotFound
	StatusInternalServerError Status = http.StatusInternalServerError
	StatusGatewayTimeout      Status = http.StatusGatewayTimeout
)

var statusNames = map[Status]string{
	StatusBadRequest:          "BAD_REQUEST",
	StatusUnauthorized:        "UNAUTHORIZED",
	StatusForbidden:           "FORBIDDEN",
	StatusNotFound:            "NOT_FOUND",
	StatusInternalServerError: "INTERNAL_SERVER_ERROR",
	StatusGatewayTimeout:      "GATEWAY_TIMEOUT",
}

// returns the numeric code used for the transport reply
func (s Status) Code() int {
	return int(s)
}

// returns the enumerated wire name, e.g. NOT_FOUND
func (s Status) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}

	return statusNames[StatusInternalServerError]
}

func (s Status) String() string {
	return s.Name()
}

// Kind tags the failure variants handled by the classifier.
type Kind int

const (
	KindUnclassified Kind = iota
	KindValidation
	KindDataNotFound
	KindUnauthorized
	KindAccessDenied
	KindServerError
	KindTimeout
	KindRequestMalformed
	KindResourceAccess
	KindRouteNotFound
)

var kindNames = [...]string{
	KindUnclassified:     "unclassified",
	KindValidation:       "validation",
	KindDataNotFound:     "data_not_found",
	KindUnauthorized:     "unauthorized",
	KindAccessDenied:     "access_denied",
	KindServerError:      "server_error",
	KindTimeout:          "timeout",
	KindRequestMalformed: "request_malformed",
	KindResourceAccess:   "resource_access",
	KindRouteNotFound:    "route_not_found",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnclassified]
	}

	return kindNames[k]
}

// sub-causes grouped under the malformed request variant
type MalformedCause int

const (
	CauseUnreadableBody MalformedCause = iota
	CauseMissingParameter
	CauseMissingHeader
	CauseUnsupportedMediaType
	CauseConstraintViolation
	CauseTypeMismatch
)

// wireResponse keeps the JSON field order stable and emits a null method when unavailable
type wireResponse struct {
	Method     *string  `json:"method"`
	RequestURI string   `json:"requestUri"`
	StatusCode string   `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Errors     []Record `json:"errors"`
}

func (r Response) MarshalJSON() ([]byte, error) {
	w := wireResponse{
		RequestURI: r.RequestURI,
		StatusCode: r.StatusCode,
		Timestamp:  r.Timestamp,
		Errors:     r.Errors,
	}

	if r.Method != "" {
		method := r.Method
		w.Method = &method
	}

	if w.Errors == nil {
		w.Errors = []Record{}
	}

	return json.Marshal(w)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var w wireResponse
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	r.Method = ""
	if w.Method != nil {
		r.Method = *w.Method
	}

	r.RequestURI = w.RequestURI
	r.StatusCode = w.StatusCode
	r.Timestamp = w.Timestamp
	r.Errors = w.Errors

	return nil
}
