package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// genericErrorMessage is the fallback shown when the server gave us
// nothing usable (transport failures, empty error bodies).
const genericErrorMessage = "Something went wrong. Please try again."

// FieldError is one entry of a validation error body: the offending
// field path plus the server's message for it.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// APIError is any non-2xx response from the EdgeOS API. Detail carries
// the error body's detail field; Fields is populated for validation
// failures, where detail is a list of field/message pairs instead.
type APIError struct {
	Status int
	Detail string
	Fields []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message())
}

// Message converts the error to the single human-readable string the
// caller surfaces. Authentication failures get a fixed phrasing;
// validation failures surface the first field message; everything else
// passes the server's detail through verbatim.
func (e *APIError) Message() string {
	switch {
	case e.Status == http.StatusUnauthorized:
		return "Session expired"
	case e.Status == http.StatusUnprocessableEntity && len(e.Fields) > 0:
		return e.Fields[0].Msg
	case e.Detail != "":
		return e.Detail
	}
	return genericErrorMessage
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ErrorMessage converts any error from the client into toast-ready text.
// Transport failures and unknown errors collapse to a generic fallback;
// API errors use their own message mapping.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return genericErrorMessage
}

// parseAPIError builds an APIError from a non-2xx response body. The
// body is either {"detail": "..."} or, for validation failures,
// {"detail": [{"loc": [...], "msg": "..."}]}.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}
	var fields []FieldError
	if err := json.Unmarshal(envelope.Detail, &fields); err == nil {
		apiErr.Fields = fields
	}
	return apiErr
}
