// Package money formats currency amounts and dates for document
// previews
package money

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type currencyInfo struct {
	symbol string
	places int32
}

var currencies = map[string]currencyInfo{
	"USD": {symbol: "$", places: 2},
	"EUR": {symbol: "€", places: 2},
	"GBP": {symbol: "£", places: 2},
	"JPY": {symbol: "¥", places: 0},
	"AUD": {symbol: "A$", places: 2},
	"CAD": {symbol: "C$", places: 2},
	"INR": {symbol: "₹", places: 2},
}

// Formatter renders money amounts and dates. It is constructed
// explicitly from configuration and carries no ambient state; the same
// inputs always produce the same output.
type Formatter struct {
	currency   string
	info       currencyInfo
	dateLayout string
}

// NewFormatter creates a formatter for a currency code and date layout.
// Unknown currency codes fall back to printing the code itself as the
// symbol with two decimal places. An empty layout means "Jan 2, 2006".
func NewFormatter(currency, dateLayout string) *Formatter {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	info, ok := currencies[code]
	if !ok {
		info = currencyInfo{symbol: code + " ", places: 2}
	}
	if dateLayout == "" {
		dateLayout = "Jan 2, 2006"
	}
	return &Formatter{currency: code, info: info, dateLayout: dateLayout}
}

// Currency returns the formatter's currency code.
func (f *Formatter) Currency() string { return f.currency }

// FormatCurrency renders an amount with the currency symbol, grouped
// thousands, and the currency's decimal places. Negative amounts render
// with a leading minus before the symbol.
func (f *Formatter) FormatCurrency(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	abs := amount.Abs().StringFixed(f.info.places)

	intPart := abs
	fracPart := ""
	if i := strings.IndexByte(abs, '.'); i >= 0 {
		intPart, fracPart = abs[:i], abs[i:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(f.info.symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders a date with the configured layout.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(f.dateLayout)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
