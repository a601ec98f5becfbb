package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/api"
	"github.com/trackspring/client/pkg/models"
	"golang.org/x/exp/slices"
	"golang.org/x/text/currency"
)

// SupportedCurrencies lists the ISO 4217 codes the API converts between.
var SupportedCurrencies = []string{
	"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF", "CNY", "SEK", "NZD",
	"MXN", "SGD", "HKD", "NOK", "TRY", "RUB", "INR", "BRL", "ZAR", "KRW",
}

// MaxConversionAmount is the largest amount that can be converted.
var MaxConversionAmount = decimal.NewFromInt(999999999)

var currencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"SEK": "Swedish Krona",
	"NZD": "New Zealand Dollar",
	"MXN": "Mexican Peso",
	"SGD": "Singapore Dollar",
	"HKD": "Hong Kong Dollar",
	"NOK": "Norwegian Krone",
	"TRY": "Turkish Lira",
	"RUB": "Russian Ruble",
	"INR": "Indian Rupee",
	"BRL": "Brazilian Real",
	"ZAR": "South African Rand",
	"KRW": "South Korean Won",
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "CHF",
	"CNY": "¥",
	"SEK": "kr",
	"NZD": "NZ$",
	"MXN": "$",
	"SGD": "S$",
	"HKD": "HK$",
	"NOK": "kr",
	"TRY": "₺",
	"RUB": "₽",
	"INR": "₹",
	"BRL": "R$",
	"ZAR": "R",
	"KRW": "₩",
}

// CurrencyService converts amounts and looks up exchange rates.
type CurrencyService struct {
	client *api.Client
}

// NewCurrencyService returns a CurrencyService for the client.
func NewCurrencyService(c *api.Client) *CurrencyService {
	return &CurrencyService{client: c}
}

// Convert converts amount from one currency to another.
func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (models.Conversion, error) {
	var c models.Conversion
	err := s.client.Post(ctx, "/currency/convert", nil, models.ConversionRequest{
		Amount:       amount,
		FromCurrency: from,
		ToCurrency:   to,
	}, &c)
	return c, err
}

// ConvertMultiple converts amount into each of the target currencies.
func (s *CurrencyService) ConvertMultiple(ctx context.Context, amount decimal.Decimal, from string, to []string) ([]models.Conversion, error) {
	query := url.Values{
		"amount":       {amount.String()},
		"fromCurrency": {from},
		"toCurrencies": {strings.Join(to, ",")},
	}

	var cs []models.Conversion
	err := s.client.Post(ctx, "/currency/convert-multiple", query, nil, &cs)
	return cs, err
}

// Rate returns the exchange rate between two currencies.
func (s *CurrencyService) Rate(ctx context.Context, from, to string) (models.ExchangeRate, error) {
	var r models.ExchangeRate
	err := s.client.Get(ctx, api.Path("currency", "rate", from, to), nil, &r)
	return r, err
}

// Rates returns the rates of all supported currencies for a base currency.
func (s *CurrencyService) Rates(ctx context.Context, base string) (models.ExchangeRates, error) {
	var r models.ExchangeRates
	err := s.client.Get(ctx, api.Path("currency", "rates", base), nil, &r)
	return r, err
}

// Supported returns the currency codes the API supports.
func (s *CurrencyService) Supported(ctx context.Context) ([]string, error) {
	var cs []string
	err := s.client.Get(ctx, "/currency/supported", nil, &cs)
	return cs, err
}

// Info returns name and symbol of a currency.
func (s *CurrencyService) Info(ctx context.Context, code string) (models.CurrencyInfo, error) {
	var i models.CurrencyInfo
	err := s.client.Get(ctx, api.Path("currency", "info", code), nil, &i)
	return i, err
}

// CacheStatus reports if the rate cache of the server is stale.
func (s *CurrencyService) CacheStatus(ctx context.Context) (models.CacheStatus, error) {
	var st models.CacheStatus
	err := s.client.Get(ctx, "/currency/cache/status", nil, &st)
	return st, err
}

// ClearCache empties the rate cache of the server.
func (s *CurrencyService) ClearCache(ctx context.Context) (models.Message, error) {
	var m models.Message
	err := s.client.Delete(ctx, "/currency/cache", &m)
	return m, err
}

// IsSupportedCurrency reports if code is one of SupportedCurrencies.
func IsSupportedCurrency(code string) bool {
	return slices.Contains(SupportedCurrencies, strings.ToUpper(code))
}

// ValidateCurrencyCode checks that code is a supported three letter ISO 4217 code.
func ValidateCurrencyCode(code string) error {
	if len(code) != 3 {
		return ErrCurrencyCodeLength
	}

	unit, err := currency.ParseISO(code)
	if err != nil || !IsSupportedCurrency(unit.String()) {
		return ErrCurrencyCodeUnsupported
	}
	return nil
}

// ParseAmount parses a decimal amount entered by the user.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}
	return d, nil
}

// ValidateConversionAmount checks that amount is positive and not too large.
func ValidateConversionAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if amount.GreaterThan(MaxConversionAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// CurrencyName returns the English name of a currency.
func CurrencyName(code string) string {
	if name, ok := currencyNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code + " Currency"
}

// CurrencySymbol returns the symbol of a currency, or the code if it has none.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code
}

// CurrencyFlag returns the flag emoji of the country or region issuing
// the currency.
func CurrencyFlag(code string) string {
	code = strings.ToUpper(code)
	if !IsSupportedCurrency(code) {
		return "🏳️"
	}
	if code == "EUR" {
		return "🇪🇺"
	}

	// The first two letters of an ISO 4217 code are the ISO 3166 country code
	flag := make([]rune, 0, 2)
	for _, r := range code[:2] {
		flag = append(flag, 0x1F1E6+(r-'A'))
	}
	return string(flag)
}

// CurrencyInfoOf returns the static information about a currency.
func CurrencyInfoOf(code string) models.CurrencyInfo {
	code = strings.ToUpper(code)
	return models.CurrencyInfo{
		Code:   code,
		Name:   CurrencyName(code),
		Symbol: CurrencySymbol(code),
	}
}
