package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trackspring/client/pkg/types"
)

// FormatAmount formats an amount as US dollars, e.g. $1,234.50 or -$3.00.
func FormatAmount(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	whole, fraction, _ := strings.Cut(amount.StringFixed(2), ".")
	return sign + "$" + groupThousands(whole) + "." + fraction
}

// groupThousands inserts a comma between every group of three digits.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// FormatAmountWithCurrency prefixes the amount with the currency symbol.
func FormatAmountWithCurrency(amount decimal.Decimal, code string) string {
	return CurrencySymbol(code) + amount.StringFixed(2)
}

// FormatDate formats a timestamp as e.g. "May 12, 2024" in local time.
func FormatDate(t types.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Time().In(time.Local).Format("Jan 2, 2006")
}

// FormatDateTime formats a timestamp as e.g. "May 12, 2024, 08:15 AM" in local time.
func FormatDateTime(t types.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Time().In(time.Local).Format("Jan 2, 2006, 03:04 PM")
}
