package dto

import (
	"repairs/internal/model"

	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Title           string          `json:"title"           validate:"required,min=2"`
	SKU             string          `json:"sku"             validate:"required"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unitPrice"       validate:"min=0"`
	SellingPrice    decimal.Decimal `json:"sellingPrice"    validate:"min=0"`
	Quantity        int             `json:"quantity"        validate:"min=0"`
	ReorderLevel    int             `json:"reorderLevel"    validate:"min=0"`
	ReorderQuantity int             `json:"reorderQuantity" validate:"min=0"`
	Supplier        []string        `json:"supplier"        validate:"omitempty,dive,required"`
}

type SupplierRequest struct {
	Company  string   `json:"company"  validate:"required,min=2"`
	Location string   `json:"location" validate:"required"`
	Products []string `json:"products" validate:"omitempty,dive,required"`
	LeadTime int      `json:"leadTime" validate:"min=0"`
}

type StockRequest struct {
	Product     string `json:"product"      validate:"required"`
	Supplier    string `json:"supplier"     validate:"required"`
	Quantity    int    `json:"quantity"     validate:"required,min=1"`
	BatchNumber string `json:"batch_number" validate:"required"`
}

type SaleRequest struct {
	Product  string           `json:"product"  validate:"required"`
	Job      string           `json:"job"      validate:"required"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Price    decimal.Decimal  `json:"price"    validate:"min=0"`
	Status   model.SaleStatus `json:"status"   validate:"omitempty,enum"`
	Tax      decimal.Decimal  `json:"tax"      validate:"min=0,max=100"`
}

type SaleStatusRequest struct {
	Status model.SaleStatus `json:"status" validate:"required,enum"`
}
