package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// FallbackErrorMessage is shown when a failure carries no usable text.
const FallbackErrorMessage = "An error occurred"

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	// Message is the server-supplied message field, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: status %d", e.StatusCode)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
	}
	return apiErr
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ErrorMessage normalizes err into text for the user: the server's message, else the
// error's own text, else FallbackErrorMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}

// SearchError is returned when every search query failed. Causes are in query order.
type SearchError struct {
	Errs []error
}

func (e *SearchError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, ErrorMessage(err))
	}
	return "search failed: " + strings.Join(msgs, "; ")
}

func (e *SearchError) Unwrap() []error {
	return e.Errs
}

// NotFound reports whether every query failed with a 404, which the backend uses for
// an empty match set.
func (e *SearchError) NotFound() bool {
	if len(e.Errs) == 0 {
		return false
	}
	for _, err := range e.Errs {
		if !IsNotFound(err) {
			return false
		}
	}
	return true
}
