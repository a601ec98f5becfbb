package models

import (
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/types"
)

// ConversionRequest is the payload for a currency conversion.
type ConversionRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
}

// Conversion is the ephemeral result of converting an amount.
type Conversion struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ToCurrency      string          `json:"toCurrency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	Timestamp       types.Timestamp `json:"timestamp"`
	Source          string          `json:"source"`
}

// IsZero reports if c is the neutral zero state shown after a failed conversion.
func (c Conversion) IsZero() bool {
	return c.ConvertedAmount.IsZero() && c.ExchangeRate.IsZero()
}

// ExchangeRate is the rate between two currencies.
type ExchangeRate struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

// ExchangeRates are all rates for a base currency. Timestamp is in
// milliseconds since the epoch.
type ExchangeRates struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	Timestamp    int64                      `json:"timestamp"`
}

// CurrencyInfo describes a currency.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CacheStatus reports the state of the server side rate cache.
type CacheStatus struct {
	CacheStale bool   `json:"cacheStale"`
	Message    string `json:"message"`
}

// Message is a generic response carrying only a message.
type Message struct {
	Message string `json:"message"`
}
