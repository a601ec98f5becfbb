package mockapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/cache"
	"github.com/trackspring/client/pkg/service"
)

// RateCacheTTL is how long computed rates are served from the cache.
const RateCacheTTL = time.Hour

// DefaultRates are units of each supported currency per US dollar.
var DefaultRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.92"),
	"GBP": decimal.RequireFromString("0.79"),
	"JPY": decimal.RequireFromString("151.50"),
	"CAD": decimal.RequireFromString("1.36"),
	"AUD": decimal.RequireFromString("1.52"),
	"CHF": decimal.RequireFromString("0.90"),
	"CNY": decimal.RequireFromString("7.23"),
	"SEK": decimal.RequireFromString("10.70"),
	"NZD": decimal.RequireFromString("1.66"),
	"MXN": decimal.RequireFromString("16.60"),
	"SGD": decimal.RequireFromString("1.35"),
	"HKD": decimal.RequireFromString("7.82"),
	"NOK": decimal.RequireFromString("10.80"),
	"TRY": decimal.RequireFromString("32.20"),
	"RUB": decimal.RequireFromString("92.50"),
	"INR": decimal.RequireFromString("83.30"),
	"BRL": decimal.RequireFromString("5.05"),
	"ZAR": decimal.RequireFromString("18.70"),
	"KRW": decimal.RequireFromString("1350"),
}

// RateTable computes exchange rates from rates relative to a base currency.
type RateTable struct {
	base  string
	rates map[string]decimal.Decimal
	now   func() time.Time
	cache *cache.LRUCache[map[string]decimal.Decimal]

	mu       sync.Mutex
	loadedAt time.Time
}

// NewRateTable returns a table for rates given as units per one unit of base.
func NewRateTable(base string, rates map[string]decimal.Decimal, now func() time.Time) *RateTable {
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[code] = rate
	}
	table[base] = decimal.NewFromInt(1)

	return &RateTable{
		base:  base,
		rates: table,
		now:   now,
		cache: cache.NewLRUCache[map[string]decimal.Decimal](len(service.SupportedCurrencies), RateCacheTTL, cache.WithClock(now)),
	}
}

// Rates returns the rates of all known currencies for base.
func (r *RateTable) Rates(base string) (map[string]decimal.Decimal, error) {
	if rates, ok := r.cache.Get(base); ok {
		return rates, nil
	}

	baseRate, ok := r.rates[base]
	if !ok || baseRate.IsZero() {
		return nil, fmt.Errorf("Exchange rate not found for %s", base)
	}

	rates := make(map[string]decimal.Decimal, len(r.rates))
	for code, rate := range r.rates {
		if code == base {
			rates[code] = decimal.NewFromInt(1)
			continue
		}
		rates[code] = rate.DivRound(baseRate, 6)
	}

	r.cache.Set(base, rates)

	r.mu.Lock()
	r.loadedAt = r.now()
	r.mu.Unlock()

	return rates, nil
}

// Rate returns the exchange rate from one currency to another.
func (r *RateTable) Rate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	rates, err := r.Rates(from)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("Exchange rate not found for %s", to)
	}
	return rate, nil
}

// Stale reports if rates were never loaded or were loaded more than RateCacheTTL ago.
func (r *RateTable) Stale() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadedAt.IsZero() || r.now().Sub(r.loadedAt) > RateCacheTTL
}

// Clear empties the cache.
func (r *RateTable) Clear() {
	r.cache.Clear()

	r.mu.Lock()
	r.loadedAt = time.Time{}
	r.mu.Unlock()
}
