package resource

import (
	"context"
	"net/http"
	"strconv"

	"repairs/internal/dto"
	"repairs/internal/model"
)

type Invoices struct {
	*Crud[model.Invoice, dto.InvoiceRequest, dto.InvoiceRequest]
}

func NewInvoices(r Requester) *Invoices {
	return &Invoices{NewCrud[model.Invoice, dto.InvoiceRequest, dto.InvoiceRequest](r, "/invoices")}
}

func (i *Invoices) GetBySlug(ctx context.Context, slug, token string) Result[model.Invoice] {
	if slug == "" {
		return Fail[model.Invoice]("slug is required")
	}
	return call[model.Invoice](ctx, i.r, http.MethodGet, join("/invoices/slug", slug), nil, token)
}

func (i *Invoices) UpdateStatus(ctx context.Context, id string, payload dto.InvoiceStatusRequest, token string) Result[model.Invoice] {
	return i.patch(ctx, id, "status", payload, token)
}

type Payments struct {
	*Crud[model.Payment, dto.PaymentRequest, dto.PaymentRequest]
}

func NewPayments(r Requester) *Payments {
	return &Payments{NewCrud[model.Payment, dto.PaymentRequest, dto.PaymentRequest](r, "/payments")}
}

// Recent returns the latest payments; limit <= 0 leaves the count to the server.
func (p *Payments) Recent(ctx context.Context, limit int, token string) Result[[]model.Payment] {
	return call[[]model.Payment](ctx, p.r, http.MethodGet, withLimit("/payments/recent", limit), nil, token)
}

func (p *Payments) Summary(ctx context.Context, token string) Result[dto.PaymentSummary] {
	return call[dto.PaymentSummary](ctx, p.r, http.MethodGet, "/payments/summary", nil, token)
}

// ByInvoice lists the payments recorded against one invoice.
func (p *Payments) ByInvoice(ctx context.Context, invoiceID, token string) Result[[]model.Payment] {
	if invoiceID == "" {
		return FromError[[]model.Payment](errMissingID)
	}
	return call[[]model.Payment](ctx, p.r, http.MethodGet, join("/invoices", invoiceID, "payments"), nil, token)
}

type Expenses struct {
	*Crud[model.Expense, dto.ExpenseRequest, dto.ExpenseRequest]
}

func NewExpenses(r Requester) *Expenses {
	return &Expenses{NewCrud[model.Expense, dto.ExpenseRequest, dto.ExpenseRequest](r, "/expenses")}
}

func (e *Expenses) Recent(ctx context.Context, limit int, token string) Result[[]model.Expense] {
	return call[[]model.Expense](ctx, e.r, http.MethodGet, withLimit("/expenses/recent", limit), nil, token)
}

func (e *Expenses) Stats(ctx context.Context, token string) Result[dto.ExpenseStats] {
	return call[dto.ExpenseStats](ctx, e.r, http.MethodGet, "/expenses/stats", nil, token)
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		return path
	}
	return path + "?limit=" + strconv.Itoa(limit)
}
