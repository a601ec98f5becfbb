package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Kinds of failures. Every *Error wraps exactly one of them.
var (
	ErrTransport       = errors.New("the server could not be reached")
	ErrUnauthenticated = errors.New("authentication is required")
	ErrNotFound        = errors.New("the requested resource does not exist")
	ErrValidation      = errors.New("the request was rejected as invalid")
	ErrRejected        = errors.New("the request was rejected")
	ErrServer          = errors.New("an error occurred on the server during your request")
)

// Error is a failed request with its normalized message.
type Error struct {
	Status  int    // HTTP status, 0 for transport failures
	Message string // message to show to the user
	kind    error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the kind of the error so that errors.Is works with
// the kinds declared in this package.
func (e *Error) Unwrap() error {
	return e.kind
}

// Message returns the message of err suitable for an error banner.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// kindOf maps a status code to the error kind.
//
// The backend answers most failures with 400, including lookups of ids
// it does not know, so the message is inspected as well.
func kindOf(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthenticated
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	case strings.Contains(strings.ToLower(message), "not found"):
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	}
	return ErrRejected
}

// newResponseError normalizes an error response body.
//
// The message is taken from the first of: a JSON "message" field, a JSON
// "error" field, the raw body, the HTTP status text.
func newResponseError(status int, body []byte) *Error {
	message := normalizeMessage(body)
	if message == "" {
		message = http.StatusText(status)
	}

	return &Error{
		Status:  status,
		Message: message,
		kind:    kindOf(status, message),
	}
}

func normalizeMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	// A JSON string literal, e.g. from a plain text body serialized as JSON
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	return string(body)
}

func newTransportError(err error) *Error {
	return &Error{
		Message: err.Error(),
		kind:    ErrTransport,
	}
}
