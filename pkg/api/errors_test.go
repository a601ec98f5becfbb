package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponseError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		kind    error
	}{
		{"message field", http.StatusBadRequest, `{"message": "Invalid amount", "error": "ignored"}`, "Invalid amount", ErrValidation},
		{"error field", http.StatusBadRequest, `{"error": "Category name is required"}`, "Category name is required", ErrValidation},
		{"raw body", http.StatusBadRequest, `Username is already taken!`, "Username is already taken!", ErrValidation},
		{"json string", http.StatusConflict, `"duplicate"`, "duplicate", ErrRejected},
		{"empty body", http.StatusInternalServerError, ``, "Internal Server Error", ErrServer},
		{"empty object", http.StatusBadGateway, `{}`, "{}", ErrServer},
		{"unauthorized", http.StatusUnauthorized, `{"error": "invalid token"}`, "invalid token", ErrUnauthenticated},
		{"forbidden", http.StatusForbidden, ``, "Forbidden", ErrUnauthenticated},
		{"not found status", http.StatusNotFound, `{"error": "no such transaction"}`, "no such transaction", ErrNotFound},
		{"not found message", http.StatusBadRequest, `Transaction not found`, "Transaction not found", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newResponseError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.message, err.Error())
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("loading transactions: %w", newResponseError(http.StatusBadRequest, []byte(`{"error":"bad page"}`)))
	assert.Equal(t, "bad page", Message(err))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestTransportError(t *testing.T) {
	err := newTransportError(errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 0, err.Status)
	assert.Equal(t, "connection refused", err.Error())
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "/transactions/:id", endpoint("/transactions/12"))
	assert.Equal(t, "/transactions", endpoint("/transactions"))
	assert.Equal(t, "/a/:id/:id", endpoint("/a/1/2"))
	assert.Equal(t, "/currency/rate/USD/EUR", endpoint("/currency/rate/USD/EUR"))
}
