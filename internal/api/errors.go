package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork is returned when the request never produced an HTTP response
	ErrNetwork = errors.New("network error")

	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid client configuration")
)

// FieldError is one server-side validation failure, typically tied to a
// single request field.
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// APIError is a non-2xx response decoded into the server's error shape.
type APIError struct {
	Status  int          `json:"-"`
	Code    string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.JoinedFieldErrors())
	}
	return fmt.Sprintf("api error (status %d)", e.Status)
}

// JoinedFieldErrors joins validation messages into one display string.
func (e *APIError) JoinedFieldErrors() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Msg != "" {
			msgs = append(msgs, fe.Msg)
		}
	}
	return strings.Join(msgs, ", ")
}
