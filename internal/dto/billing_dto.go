package dto

import (
	"repairs/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InvoiceRequest struct {
	Title    string              `json:"title"    validate:"required,min=2"`
	Job      string              `json:"job"      validate:"required"`
	Products []string            `json:"products" validate:"omitempty,dive,required"`
	Cards    []string            `json:"cards"    validate:"omitempty,dive,required"`
	Tax      decimal.Decimal     `json:"tax"      validate:"min=0,max=100"`
	Total    decimal.Decimal     `json:"total"    validate:"min=0"`
	Status   model.InvoiceStatus `json:"status"   validate:"omitempty,enum"`
}

type InvoiceStatusRequest struct {
	Status model.InvoiceStatus `json:"status" validate:"required,enum"`
}

type PaymentRequest struct {
	Invoice string              `json:"invoice" validate:"required"`
	Amount  decimal.Decimal     `json:"amount"  validate:"gt=0"`
	Ref     string              `json:"ref"     validate:"omitempty,max=64"`
	Method  model.PaymentMethod `json:"method"  validate:"required,enum"`
}

// ExpenseRequest pays either a contractor for a job card or a supplier for a
// stock batch; the struct-level rule rejects anything else.
type ExpenseRequest struct {
	Amount     decimal.Decimal     `json:"amount"               validate:"gt=0"`
	Ref        string              `json:"ref"                  validate:"omitempty,max=64"`
	Method     model.PaymentMethod `json:"method"               validate:"required,enum"`
	JobCard    string              `json:"jobCard,omitempty"`
	Stock      string              `json:"stock,omitempty"`
	Contractor string              `json:"contractor,omitempty"`
	Supplier   string              `json:"supplier,omitempty"`
}

func expensePayee(sl validator.StructLevel) {
	req := sl.Current().Interface().(ExpenseRequest)
	if _, err := model.PayeeOf(req.Contractor != "", req.JobCard != "", req.Supplier != "", req.Stock != ""); err != nil {
		sl.ReportError(req.Contractor, "contractor", "Contractor", "payee", "")
	}
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentSummary struct {
	TotalReceived decimal.Decimal            `json:"totalReceived"`
	Count         int                        `json:"count"`
	Outstanding   decimal.Decimal            `json:"outstanding"`
	ByMethod      map[string]decimal.Decimal `json:"byMethod"`
}

type ExpenseStats struct {
	TotalSpent    decimal.Decimal            `json:"totalSpent"`
	Count         int                        `json:"count"`
	ToContractors decimal.Decimal            `json:"toContractors"`
	ToSuppliers   decimal.Decimal            `json:"toSuppliers"`
	ByMethod      map[string]decimal.Decimal `json:"byMethod"`
}
