package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// Preview sections show fixed sample data so every template renders
// something recognizable before it is bound to real records.

type sampleItem struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

var sampleCompany = struct {
	Name    string
	Address string
	City    string
	Email   string
	Phone   string
}{
	Name:    "Acme Studio LLC",
	Address: "420 Maple Avenue, Suite 210",
	City:    "Portland, OR 97205",
	Email:   "billing@acmestudio.example",
	Phone:   "(503) 555-0187",
}

var sampleCustomer = struct {
	Name    string
	Company string
	Address string
}{
	Name:    "Jordan Reeves",
	Company: "Northwind Trading Co.",
	Address: "88 Harbor Street, Seattle, WA 98101",
}

var sampleItems = []sampleItem{
	{Description: "Brand identity design", Quantity: 1, UnitPrice: decimal.NewFromInt(1800)},
	{Description: "Landing page build", Quantity: 1, UnitPrice: decimal.NewFromInt(950)},
	{Description: "Support retainer (hours)", Quantity: 6, UnitPrice: decimal.NewFromFloat(85.50)},
}

// taxRate is the flat sample tax applied in totals sections.
var taxRate = decimal.NewFromFloat(0.08)

var sampleIssueDate = time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
var sampleDueDate = sampleIssueDate.AddDate(0, 1, 0)

const (
	sampleInvoiceNumber = "INV-2041"
	sampleReceiptNumber = "RCP-88612"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func sampleSubtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range sampleItems {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func sampleTax() decimal.Decimal {
	return sampleSubtotal().Mul(taxRate).Round(2)
}

func sampleTotal() decimal.Decimal {
	return sampleSubtotal().Add(sampleTax())
}
