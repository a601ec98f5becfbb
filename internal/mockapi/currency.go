package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/httputil"
	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"github.com/trackspring/client/pkg/types"
)

const (
	sourceLive = "Live Rates"
	sourceSame = "Same Currency"
)

var errCurrencyMissing = errors.New("Currency code cannot be null or empty")

func (s *Server) registerCurrencyRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/convert", httputil.OptionsPost)
	r.POST("/convert", s.Convert)
	r.OPTIONS("/convert-multiple", httputil.OptionsPost)
	r.POST("/convert-multiple", s.ConvertMultiple)

	r.GET("/rate/:from/:to", s.Rate)
	r.GET("/rates/:base", s.Rates)
	r.GET("/supported", s.SupportedCurrencies)
	r.GET("/info/:code", s.CurrencyInfo)

	r.GET("/cache/status", s.CacheStatus)
	r.OPTIONS("/cache", httputil.OptionsDelete)
	r.DELETE("/cache", s.ClearCache)
}

// currencyCode normalizes code and checks that it is supported.
func currencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", errCurrencyMissing
	}

	err := service.ValidateCurrencyCode(code)
	if errors.Is(err, service.ErrCurrencyCodeUnsupported) {
		return "", fmt.Errorf("Unsupported currency: %s", code)
	}
	return code, err
}

func (s *Server) convert(amount decimal.Decimal, from, to string) (models.Conversion, error) {
	from, err := currencyCode(from)
	if err != nil {
		return models.Conversion{}, err
	}

	to, err = currencyCode(to)
	if err != nil {
		return models.Conversion{}, err
	}

	if !amount.IsPositive() {
		return models.Conversion{}, errors.New("Amount must be positive")
	}

	conversion := models.Conversion{
		OriginalAmount: amount,
		FromCurrency:   from,
		ToCurrency:     to,
		Timestamp:      types.NewTimestamp(s.now()),
	}

	if from == to {
		conversion.ConvertedAmount = amount
		conversion.ExchangeRate = decimal.NewFromInt(1)
		conversion.Source = sourceSame
		return conversion, nil
	}

	rate, err := s.rates.Rate(from, to)
	if err != nil {
		return models.Conversion{}, err
	}

	conversion.ConvertedAmount = amount.Mul(rate).Round(2)
	conversion.ExchangeRate = rate
	conversion.Source = sourceLive
	return conversion, nil
}

// Convert converts an amount between two currencies
//
//	@Summary		Convert currency
//	@Tags			Currency
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	models.Conversion
//	@Failure		400			{object}	httpError
//	@Param			conversion	body		models.ConversionRequest	true	"Conversion"
//	@Router			/currency/convert [post]
func (s *Server) Convert(c *gin.Context) {
	var req models.ConversionRequest
	if !bind(c, &req) {
		return
	}

	conversion, err := s.convert(req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		abort(c, fmt.Errorf("Currency conversion failed: %w", err))
		return
	}

	c.JSON(http.StatusOK, conversion)
}

// ConvertMultiple converts an amount into several currencies
//
//	@Summary		Convert into multiple currencies
//	@Tags			Currency
//	@Produce		json
//	@Success		200				{array}		models.Conversion
//	@Failure		400				{object}	httpError
//	@Param			amount			query		string	true	"Amount"
//	@Param			fromCurrency	query		string	true	"Source currency"
//	@Param			toCurrencies	query		string	true	"Comma separated target currencies"
//	@Router			/currency/convert-multiple [post]
func (s *Server) ConvertMultiple(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		abort(c, service.ErrAmountInvalid)
		return
	}

	var targets []string
	for _, values := range c.QueryArray("toCurrencies") {
		for _, code := range strings.Split(values, ",") {
			if code = strings.TrimSpace(code); code != "" {
				targets = append(targets, code)
			}
		}
	}

	out := make([]models.Conversion, 0, len(targets))
	for _, to := range targets {
		conversion, err := s.convert(amount, c.Query("fromCurrency"), to)
		if err != nil {
			abort(c, fmt.Errorf("Currency conversion failed: %w", err))
			return
		}
		out = append(out, conversion)
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) Rate(c *gin.Context) {
	rate, err := s.rate(c.Param("from"), c.Param("to"))
	if err != nil {
		abort(c, fmt.Errorf("Failed to get exchange rate: %w", err))
		return
	}

	c.JSON(http.StatusOK, rate)
}

func (s *Server) rate(from, to string) (models.ExchangeRate, error) {
	from, err := currencyCode(from)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	to, err = currencyCode(to)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	rate, err := s.rates.Rate(from, to)
	if err != nil {
		return models.ExchangeRate{}, err
	}

	return models.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		ExchangeRate: rate,
	}, nil
}

func (s *Server) Rates(c *gin.Context) {
	base, err := currencyCode(c.Param("base"))
	if err != nil {
		abort(c, err)
		return
	}

	rates, err := s.rates.Rates(base)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ExchangeRates{
		BaseCurrency: base,
		Rates:        rates,
		Timestamp:    s.now().UnixMilli(),
	})
}

func (s *Server) SupportedCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, service.SupportedCurrencies)
}

func (s *Server) CurrencyInfo(c *gin.Context) {
	code, err := currencyCode(c.Param("code"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, service.CurrencyInfoOf(code))
}

func (s *Server) CacheStatus(c *gin.Context) {
	status := models.CacheStatus{
		CacheStale: s.rates.Stale(),
		Message:    "Cache is fresh",
	}
	if status.CacheStale {
		status.Message = "Cache is stale, will fetch fresh rates"
	}

	c.JSON(http.StatusOK, status)
}

func (s *Server) ClearCache(c *gin.Context) {
	s.rates.Clear()
	c.JSON(http.StatusOK, models.Message{Message: "Cache cleared successfully"})
}
