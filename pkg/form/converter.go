package form

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/types"
)

// SourceSameCurrency is the source of conversions that need no exchange rate.
const SourceSameCurrency = "Same Currency"

// ConversionService converts amounts between currencies.
type ConversionService interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (models.Conversion, error)
}

// Converter previews a conversion before it is attached to a draft.
//
// The last result is kept until the next conversion. A failed conversion
// resets it to the zero Conversion.
type Converter struct {
	currency ConversionService
	now      func() time.Time

	mu     sync.Mutex
	result models.Conversion
	err    error
}

// NewConverter returns a converter using the service.
func NewConverter(s ConversionService) *Converter {
	return &Converter{
		currency: s,
		now:      time.Now,
	}
}

// Convert converts amount from one currency to another.
//
// Converting between the same currency returns the amount with a rate of 1
// without calling the service.
func (c *Converter) Convert(ctx context.Context, amount, from, to string) (models.Conversion, error) {
	result, err := c.convert(ctx, amount, strings.ToUpper(strings.TrimSpace(from)), strings.ToUpper(strings.TrimSpace(to)))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.result = models.Conversion{}
		c.err = err
		return models.Conversion{}, err
	}

	c.result = result
	c.err = nil
	return result, nil
}

func (c *Converter) convert(ctx context.Context, amount, from, to string) (models.Conversion, error) {
	value, err := service.ParseAmount(amount)
	if err != nil {
		return models.Conversion{}, err
	}

	if !value.IsPositive() {
		return models.Conversion{}, service.ErrAmountNotPositive
	}

	if from == to {
		return models.Conversion{
			OriginalAmount:  value,
			FromCurrency:    from,
			ConvertedAmount: value,
			ToCurrency:      to,
			ExchangeRate:    decimal.NewFromInt(1),
			Timestamp:       types.NewTimestamp(c.now()),
			Source:          SourceSameCurrency,
		}, nil
	}

	if err := service.ValidateConversionAmount(value); err != nil {
		return models.Conversion{}, err
	}
	if err := service.ValidateCurrencyCode(from); err != nil {
		return models.Conversion{}, err
	}
	if err := service.ValidateCurrencyCode(to); err != nil {
		return models.Conversion{}, err
	}

	return c.currency.Convert(ctx, value, from, to)
}

// Result returns the last successful conversion or the zero Conversion.
func (c *Converter) Result() models.Conversion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the error of the last conversion.
func (c *Converter) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Apply overwrites amount and currency of the draft with the last result.
// The draft is returned unchanged when there is no result.
func (c *Converter) Apply(d Draft) (Draft, bool) {
	result := c.Result()
	if result.IsZero() {
		return d, false
	}

	d.Amount = result.ConvertedAmount.String()
	d.Currency = result.ToCurrency
	return d, true
}
