package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/trackspring/client/pkg/models"
	"github.com/trackspring/client/pkg/service"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func describeConversion(c models.Conversion) string {
	return fmt.Sprintf("%s = %s (rate %s, %s)",
		service.FormatAmountWithCurrency(c.OriginalAmount, c.FromCurrency),
		service.FormatAmountWithCurrency(c.ConvertedAmount, c.ToCurrency),
		c.ExchangeRate,
		c.Source,
	)
}

// convert converts AMOUNT FROM into one or more target currencies.
func convert(ctx context.Context, e *env, args []string) error {
	fs := e.flags("convert")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: trackspring convert AMOUNT FROM TO [TO...]")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 3 {
		fs.Usage()
		return fmt.Errorf("%w: amount, source and target currency are required", ErrUsage)
	}

	amount, from, targets := fs.Arg(0), fs.Arg(1), fs.Args()[2:]

	if len(targets) == 1 {
		c, err := e.converter.Convert(ctx, amount, from, targets[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(e.stdout, describeConversion(c))
		return nil
	}

	value, err := service.ParseAmount(amount)
	if err != nil {
		return err
	}
	if err := service.ValidateConversionAmount(value); err != nil {
		return err
	}

	cs, err := e.services.Currency.ConvertMultiple(ctx, value, strings.ToUpper(from), targets)
	if err != nil {
		return err
	}

	for _, c := range cs {
		fmt.Fprintln(e.stdout, describeConversion(c))
	}
	return nil
}

func rates(ctx context.Context, e *env, args []string) error {
	fs := e.flags("rates")
	status := fs.Bool("status", false, "Show if the rate cache of the server is stale")
	clearCache := fs.Bool("clear", false, "Clear the rate cache of the server")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := e.services.Currency

	switch {
	case *clearCache:
		m, err := s.ClearCache(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, m.Message)
		return nil
	case *status:
		st, err := s.CacheStatus(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.stdout, st.Message)
		return nil
	}

	base := baseCurrency
	if fs.NArg() > 0 {
		base = strings.ToUpper(fs.Arg(0))
	}

	if err := service.ValidateCurrencyCode(base); err != nil {
		return err
	}

	r, err := s.Rates(ctx, base)
	if err != nil {
		return err
	}

	codes := maps.Keys(r.Rates)
	slices.Sort(codes)

	fmt.Fprintf(e.stdout, "1 %s is worth\n", r.BaseCurrency)
	tw := newTable(e.stdout)
	for _, code := range codes {
		if code == r.BaseCurrency {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", service.CurrencyFlag(code), code, r.Rates[code])
	}
	return tw.Flush()
}

func currencies(ctx context.Context, e *env, _ []string) error {
	codes, err := e.services.Currency.Supported(ctx)
	if err != nil {
		return err
	}

	tw := newTable(e.stdout)
	for _, code := range codes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", service.CurrencyFlag(code), code, service.CurrencySymbol(code), service.CurrencyName(code))
	}
	return tw.Flush()
}
