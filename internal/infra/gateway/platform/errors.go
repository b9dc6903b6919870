package platform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// APIError is a failed platform API call: a non-2xx HTTP status or an
// envelope code other than 200. The user-facing text prefers the server's
// message, then the flattened field error map, then a generic status line.
type APIError struct {
	Status  int                 // HTTP status code
	Code    int                 // envelope code, when present
	Message string              // server-provided message
	Fields  map[string][]string // field-keyed validation errors
}

func (e *APIError) Error() string {
	if flat := e.FlatFieldErrors(); flat != "" {
		return flat
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FlatFieldErrors joins every field error message with single spaces, in
// deterministic field order.
func (e *APIError) FlatFieldErrors() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msgs []string
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k]...)
	}
	return strings.Join(msgs, " ")
}

// IsAPIError checks if an error is (or wraps) a platform API error
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound reports whether the error is a 404 from the platform
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// IsUnauthorized reports whether the error is a 401 from the platform,
// typically an expired or revoked token
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 401
}
