package handler

import (
	"net/http"

	"repairs/internal/dto"
	"repairs/internal/resource"

	"github.com/gin-gonic/gin"
)

const defaultRecentLimit = 10

// BillingHandler serves the invoice, payment and expense routes beyond
// plain CRUD.
type BillingHandler struct {
	invoices *resource.Invoices
	payments *resource.Payments
	expenses *resource.Expenses
	tokens   TokenSource
}

func NewBillingHandler(set *resource.Set, tokens TokenSource) *BillingHandler {
	return &BillingHandler{invoices: set.Invoices, payments: set.Payments, expenses: set.Expenses, tokens: tokens}
}

func (h *BillingHandler) InvoiceBySlug(c *gin.Context) {
	respond(c, http.StatusOK, h.invoices.GetBySlug(c.Request.Context(), c.Param("slug"), h.tokens.AccessToken()))
}

func (h *BillingHandler) UpdateInvoiceStatus(c *gin.Context) {
	var req dto.InvoiceStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	respond(c, http.StatusOK, h.invoices.UpdateStatus(c.Request.Context(), c.Param("id"), req, h.tokens.AccessToken()))
}

// InvoicePayments godoc
// @Summary Payments recorded against an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {array} model.Payment
// @Failure 502 {object} apierror.APIError
// @Router /v1/invoices/{id}/payments [get]
func (h *BillingHandler) InvoicePayments(c *gin.Context) {
	respond(c, http.StatusOK, h.payments.ByInvoice(c.Request.Context(), c.Param("id"), h.tokens.AccessToken()))
}

func (h *BillingHandler) RecentPayments(c *gin.Context) {
	respond(c, http.StatusOK, h.payments.Recent(c.Request.Context(), limitParam(c, defaultRecentLimit), h.tokens.AccessToken()))
}

func (h *BillingHandler) PaymentSummary(c *gin.Context) {
	respond(c, http.StatusOK, h.payments.Summary(c.Request.Context(), h.tokens.AccessToken()))
}

func (h *BillingHandler) RecentExpenses(c *gin.Context) {
	respond(c, http.StatusOK, h.expenses.Recent(c.Request.Context(), limitParam(c, defaultRecentLimit), h.tokens.AccessToken()))
}

func (h *BillingHandler) ExpenseStats(c *gin.Context) {
	respond(c, http.StatusOK, h.expenses.Stats(c.Request.Context(), h.tokens.AccessToken()))
}
