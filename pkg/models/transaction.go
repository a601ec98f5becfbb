package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/types"
)

// TransactionType is the direction of money flow of a transaction.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionTypes lists all valid transaction types.
var TransactionTypes = []TransactionType{Income, Expense}

// Valid reports if the transaction type is one of the known types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Label returns the display name for the type.
func (t TransactionType) Label() string {
	switch t {
	case Income:
		return "Income"
	case Expense:
		return "Expense"
	}
	return string(t)
}

// ParseTransactionType parses a transaction type case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrTransactionTypeInvalid, s)
	}
	return t, nil
}

// Transaction is a single income or expense of the authenticated user.
type Transaction struct {
	ID              int64           `json:"id" example:"42"`
	Description     string          `json:"description" example:"Coffee"`
	Amount          decimal.Decimal `json:"amount" example:"4.5"`
	Type            TransactionType `json:"type" example:"EXPENSE"`
	Category        string          `json:"category" example:"Food & Dining"`
	Notes           string          `json:"notes" example:"Oat milk"`
	Currency        string          `json:"currency,omitempty" example:"USD"`
	TransactionDate types.Timestamp `json:"transactionDate" example:"2024-05-12T08:15:00.000Z"`
	CreatedAt       types.Timestamp `json:"createdAt" example:"2024-05-12T08:16:02.000Z"`
	UpdatedAt       types.Timestamp `json:"updatedAt" example:"2024-05-12T08:16:02.000Z"`
}

// Signed returns the amount with expenses negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionRequest is the payload for creating or replacing a transaction.
type TransactionRequest struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	TransactionDate types.Timestamp `json:"transactionDate"`
	Category        *string         `json:"category"`
	Notes           *string         `json:"notes"`
	Currency        string          `json:"currency,omitempty"`
}

// MarshalJSON writes the amount as a JSON number instead of the quoted
// string decimal.Decimal produces by default.
func (r TransactionRequest) MarshalJSON() ([]byte, error) {
	type alias TransactionRequest
	return json.Marshal(struct {
		alias
		Amount json.Number `json:"amount"`
	}{
		alias:  alias(r),
		Amount: json.Number(r.Amount.String()),
	})
}
