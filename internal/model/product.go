package model

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Product struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	SKU             string          `json:"sku"`
	Category        string          `json:"category,omitempty"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"`
	Quantity        int             `json:"quantity"`
	ReorderLevel    int             `json:"reorderLevel"`
	ReorderQuantity int             `json:"reorderQuantity"`
	Supplier        []Ref[Supplier] `json:"supplier"`
}

func (p Product) GetID() string { return p.ID }

// NeedsReorder reports whether stock has fallen to the reorder level.
func (p Product) NeedsReorder() bool { return p.Quantity <= p.ReorderLevel }

// Markup is (sellingPrice - unitPrice) / unitPrice * 100, zero when the unit
// price is zero.
func (p Product) Markup() decimal.Decimal {
	if p.UnitPrice.IsZero() {
		return decimal.Zero
	}
	return p.SellingPrice.Sub(p.UnitPrice).Div(p.UnitPrice).Mul(hundred).Round(2)
}

// SellingPriceWithMarkup applies a percentage markup to the unit price.
func SellingPriceWithMarkup(unitPrice, markupPct decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(1).Add(markupPct.Div(hundred))).Round(2)
}

type Supplier struct {
	ID       string         `json:"id"`
	Company  string         `json:"company"`
	Location string         `json:"location"`
	Products []Ref[Product] `json:"products"`
	LeadTime int            `json:"leadTime"` // days
}

func (s Supplier) GetID() string { return s.ID }

// Stock is one delivered batch of a product from a supplier.
type Stock struct {
	ID          string        `json:"id"`
	Product     Ref[Product]  `json:"product"`
	Supplier    Ref[Supplier] `json:"supplier"`
	Quantity    int           `json:"quantity"`
	BatchNumber string        `json:"batch_number"`
}

func (s Stock) GetID() string { return s.ID }

// Sale is a product line booked against a job. Tax is a percentage.
type Sale struct {
	ID       string          `json:"id"`
	Product  Ref[Product]    `json:"product"`
	Job      Ref[Job]        `json:"job"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Status   SaleStatus      `json:"status"`
	Tax      decimal.Decimal `json:"tax"`
}

func (s Sale) GetID() string { return s.ID }

func (s Sale) LineTotal() decimal.Decimal {
	return s.Price.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

func (s Sale) TaxAmount() decimal.Decimal {
	return s.LineTotal().Mul(s.Tax).Div(hundred)
}
