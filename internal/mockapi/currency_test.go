package mockapi_test

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/internal/test"
	"github.com/trackspring/client/pkg/models"
)

func (suite *TestSuiteStandard) TestConvert() {
	r := suite.request(http.MethodPost, "/currency/convert", models.ConversionRequest{
		Amount:       decimal.NewFromInt(100),
		FromCurrency: "usd",
		ToCurrency:   " EUR ",
	}, http.StatusOK)

	var c models.Conversion
	test.DecodeResponse(suite.T(), &r, &c)

	suite.Assert().Equal("USD", c.FromCurrency)
	suite.Assert().Equal("EUR", c.ToCurrency)
	suite.Assert().True(c.ConvertedAmount.Equal(decimal.NewFromInt(92)), "converted amount is %s", c.ConvertedAmount)
	suite.Assert().True(c.ExchangeRate.Equal(decimal.RequireFromString("0.92")), "rate is %s", c.ExchangeRate)
	suite.Assert().Equal("Live Rates", c.Source)
	suite.Assert().True(c.Timestamp.Time().Equal(suite.now))
}

func (suite *TestSuiteStandard) TestConvertSameCurrency() {
	r := suite.request(http.MethodPost, "/currency/convert", models.ConversionRequest{
		Amount:       decimal.RequireFromString("12.345"),
		FromCurrency: "JPY",
		ToCurrency:   "JPY",
	}, http.StatusOK)

	var c models.Conversion
	test.DecodeResponse(suite.T(), &r, &c)

	suite.Assert().True(c.ConvertedAmount.Equal(decimal.RequireFromString("12.345")))
	suite.Assert().True(c.ExchangeRate.Equal(decimal.NewFromInt(1)))
	suite.Assert().Equal("Same Currency", c.Source)
}

func (suite *TestSuiteStandard) TestConvertFails() {
	tests := []struct {
		name string
		req  models.ConversionRequest
		msg  string
	}{
		{"Unsupported", models.ConversionRequest{Amount: decimal.NewFromInt(1), FromCurrency: "XYZ", ToCurrency: "EUR"}, "Currency conversion failed: Unsupported currency: XYZ"},
		{"Length", models.ConversionRequest{Amount: decimal.NewFromInt(1), FromCurrency: "USD", ToCurrency: "EURO"}, "Currency conversion failed: Currency code must be 3 characters long"},
		{"Missing", models.ConversionRequest{Amount: decimal.NewFromInt(1), FromCurrency: "USD"}, "Currency conversion failed: Currency code cannot be null or empty"},
		{"Amount", models.ConversionRequest{Amount: decimal.Zero, FromCurrency: "USD", ToCurrency: "EUR"}, "Currency conversion failed: Amount must be positive"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/currency/convert", tt.req, http.StatusBadRequest)
			suite.Assert().Equal(tt.msg, test.DecodeError(suite.T(), &r))
		})
	}
}

func (suite *TestSuiteStandard) TestConvertMultiple() {
	r := suite.request(http.MethodPost, "/currency/convert-multiple?amount=10&fromCurrency=USD&toCurrencies=EUR,GBP,USD", nil, http.StatusOK)

	var cs []models.Conversion
	test.DecodeResponse(suite.T(), &r, &cs)

	suite.Require().Len(cs, 3)
	suite.Assert().True(cs[0].ConvertedAmount.Equal(decimal.RequireFromString("9.2")))
	suite.Assert().True(cs[1].ConvertedAmount.Equal(decimal.RequireFromString("7.9")))
	suite.Assert().Equal("Same Currency", cs[2].Source)

	r = suite.request(http.MethodPost, "/currency/convert-multiple?amount=ten&fromCurrency=USD&toCurrencies=EUR", nil, http.StatusBadRequest)
	suite.Assert().Equal("Amount must be a valid number", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestRate() {
	r := suite.request(http.MethodGet, "/currency/rate/GBP/EUR", nil, http.StatusOK)

	var rate models.ExchangeRate
	test.DecodeResponse(suite.T(), &r, &rate)
	suite.Assert().Equal("GBP", rate.FromCurrency)
	suite.Assert().True(rate.ExchangeRate.Equal(decimal.RequireFromString("1.164557")), "rate is %s", rate.ExchangeRate)

	r = suite.request(http.MethodGet, "/currency/rate/GBP/XYZ", nil, http.StatusBadRequest)
	suite.Assert().Equal("Failed to get exchange rate: Unsupported currency: XYZ", test.DecodeError(suite.T(), &r))
}

func (suite *TestSuiteStandard) TestRates() {
	r := suite.request(http.MethodGet, "/currency/rates/eur", nil, http.StatusOK)

	var rates models.ExchangeRates
	test.DecodeResponse(suite.T(), &r, &rates)
	suite.Assert().Equal("EUR", rates.BaseCurrency)
	suite.Assert().Len(rates.Rates, 20)
	suite.Assert().True(rates.Rates["EUR"].Equal(decimal.NewFromInt(1)))
	suite.Assert().True(rates.Rates["USD"].Equal(decimal.RequireFromString("1.086957")), "rate is %s", rates.Rates["USD"])
	suite.Assert().Equal(suite.now.UnixMilli(), rates.Timestamp)
}

func (suite *TestSuiteStandard) TestSupportedCurrencies() {
	r := suite.request(http.MethodGet, "/currency/supported", nil, http.StatusOK)

	var codes []string
	test.DecodeResponse(suite.T(), &r, &codes)
	suite.Assert().Len(codes, 20)
	suite.Assert().Contains(codes, "KRW")
}

func (suite *TestSuiteStandard) TestCurrencyInfo() {
	r := suite.request(http.MethodGet, "/currency/info/gbp", nil, http.StatusOK)

	var info models.CurrencyInfo
	test.DecodeResponse(suite.T(), &r, &info)
	suite.Assert().Equal(models.CurrencyInfo{Code: "GBP", Name: "British Pound", Symbol: "£"}, info)

	suite.request(http.MethodGet, "/currency/info/XYZ", nil, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRateCache() {
	status := func() models.CacheStatus {
		r := suite.request(http.MethodGet, "/currency/cache/status", nil, http.StatusOK)

		var s models.CacheStatus
		test.DecodeResponse(suite.T(), &r, &s)
		return s
	}

	suite.Assert().Equal(models.CacheStatus{CacheStale: true, Message: "Cache is stale, will fetch fresh rates"}, status())

	suite.request(http.MethodGet, "/currency/rate/USD/EUR", nil, http.StatusOK)
	suite.Assert().Equal(models.CacheStatus{CacheStale: false, Message: "Cache is fresh"}, status())

	r := suite.request(http.MethodDelete, "/currency/cache", nil, http.StatusOK)
	var msg models.Message
	test.DecodeResponse(suite.T(), &r, &msg)
	suite.Assert().Equal("Cache cleared successfully", msg.Message)
	suite.Assert().True(status().CacheStale)

	suite.request(http.MethodGet, "/currency/rates/USD", nil, http.StatusOK)
	suite.Assert().False(status().CacheStale)

	suite.now = suite.now.Add(61 * time.Minute)
	suite.Assert().True(status().CacheStale)
}
