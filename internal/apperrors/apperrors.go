// Package apperrors normalizes every failure reaching the state
// containers into a single display-ready message. View code never sees
// raw transport or server errors.
package apperrors

import (
	"errors"
	"net/http"

	"github.com/dotcomico/dotmarket-client/internal/api"
	"github.com/dotcomico/dotmarket-client/pkg/logger"
)

// FallbackMessage is used when nothing more specific can be said.
const FallbackMessage = "An unexpected error occurred"

// Fixed sentences for known status codes, used when the server sent no
// message of its own.
var statusMessages = map[int]string{
	http.StatusUnauthorized:        "Invalid credentials",
	http.StatusForbidden:           "Access denied",
	http.StatusNotFound:            "Resource not found",
	http.StatusTooManyRequests:     "Too many requests. Please wait and try again",
	http.StatusInternalServerError: "Server error. Please try again later",
}

// Message translates err into a human-readable string. Preference
// order: explicit server message, joined validation messages, known
// status code sentence, the error's own text, then fallback.
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = FallbackMessage
	}
	if err == nil {
		return fallback
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if joined := apiErr.JoinedFieldErrors(); joined != "" {
			return joined
		}
		if msg, ok := statusMessages[apiErr.Status]; ok {
			return msg
		}
		return fallback
	}

	if errors.Is(err, api.ErrNetwork) {
		return "Could not reach the server. Check your connection and try again"
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Log records err with its call-site context.
func Log(err error, context string) {
	logger.Error("Operation failed", err, map[string]interface{}{
		"context": context,
	})
}
