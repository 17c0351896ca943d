package money

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		amount   string
		want     string
	}{
		{"usd basic", "USD", "1250.5", "$1,250.50"},
		{"usd small", "USD", "7", "$7.00"},
		{"usd millions", "USD", "1234567.89", "$1,234,567.89"},
		{"eur", "EUR", "99.9", "€99.90"},
		{"jpy no decimals", "JPY", "1500", "¥1,500"},
		{"negative", "USD", "-42.5", "-$42.50"},
		{"unknown code", "XTS", "10", "XTS 10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(tt.currency, "")
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad test amount: %v", err)
			}
			if got := f.FormatCurrency(amount); got != tt.want {
				t.Errorf("FormatCurrency(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	f := NewFormatter("USD", "")
	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	if got := f.FormatDate(date); got != "Mar 5, 2026" {
		t.Errorf("FormatDate() = %q, want %q", got, "Mar 5, 2026")
	}

	iso := NewFormatter("USD", "2006-01-02")
	if got := iso.FormatDate(date); got != "2026-03-05" {
		t.Errorf("FormatDate() = %q, want %q", got, "2026-03-05")
	}
}

func TestNewFormatter_Defaults(t *testing.T) {
	f := NewFormatter("", "")
	if f.Currency() != "USD" {
		t.Errorf("Expected USD default, got %s", f.Currency())
	}

	lower := NewFormatter("eur", "")
	if lower.Currency() != "EUR" {
		t.Errorf("Expected case-insensitive code, got %s", lower.Currency())
	}
}
