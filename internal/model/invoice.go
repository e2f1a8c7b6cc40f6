package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice aggregates the sales and job cards of one job. Total is authoritative
// from the server; ComputeTotals is for display only.
type Invoice struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Products  []Ref[Sale]     `json:"products"`
	Cards     []Ref[JobCard]  `json:"cards"`
	Job       Ref[Job]        `json:"job"`
	Tax       decimal.Decimal `json:"tax"` // percent applied to labour (cards)
	Total     decimal.Decimal `json:"total"`
	Status    InvoiceStatus   `json:"status"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

func (i Invoice) GetID() string { return i.ID }

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals sums the resolved sale lines (with their own tax) and job card
// prices (taxed at the invoice rate). Unresolved refs contribute nothing.
func (i Invoice) ComputeTotals() Totals {
	products := decimal.Zero
	tax := decimal.Zero
	for _, ref := range i.Products {
		if ref.Value == nil {
			continue
		}
		products = products.Add(ref.Value.LineTotal())
		tax = tax.Add(ref.Value.TaxAmount())
	}

	labour := decimal.Zero
	for _, ref := range i.Cards {
		if ref.Value == nil {
			continue
		}
		labour = labour.Add(ref.Value.Price)
	}
	tax = tax.Add(labour.Mul(i.Tax).Div(hundred))

	subtotal := products.Add(labour)
	return Totals{
		Subtotal: subtotal.Round(2),
		Tax:      tax.Round(2),
		Total:    subtotal.Add(tax).Round(2),
	}
}

// Balance is what remains unpaid on the invoice total, floored at zero.
func (i Invoice) Balance(payments []Payment) decimal.Decimal {
	paid := decimal.Zero
	for _, p := range payments {
		if p.Invoice.ID != "" && p.Invoice.ID != i.ID {
			continue
		}
		paid = paid.Add(p.Amount)
	}
	balance := i.Total.Sub(paid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

type Payment struct {
	ID        string          `json:"id"`
	Invoice   Ref[Invoice]    `json:"invoice"`
	Amount    decimal.Decimal `json:"amount"`
	Ref       string          `json:"ref"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

func (p Payment) GetID() string { return p.ID }
