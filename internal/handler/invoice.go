package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"repairs/internal/apierror"
	"repairs/internal/infra"
	"repairs/internal/model"
	"repairs/internal/resource"
	"repairs/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// EmailQueue accepts invoice e-mails for background delivery.
// *worker.Dispatcher implements it.
type EmailQueue interface {
	EnqueueInvoiceEmail(ctx context.Context, payload worker.InvoiceEmailPayload) error
}

type SendInvoiceRequest struct {
	To      string `json:"to"      validate:"omitempty,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"omitempty,max=4000"`
}

// InvoiceDocsHandler renders invoices as PDF and queues them for e-mailing.
type InvoiceDocsHandler struct {
	set         *resource.Set
	tokens      TokenSource
	queue       EmailQueue
	storagePath string
	companyName string
	now         func() time.Time
}

// NewInvoiceDocsHandler builds the handler. queue may be nil, in which case
// e-mailing answers 503.
func NewInvoiceDocsHandler(set *resource.Set, tokens TokenSource, queue EmailQueue, storagePath, companyName string) *InvoiceDocsHandler {
	return &InvoiceDocsHandler{
		set:         set,
		tokens:      tokens,
		queue:       queue,
		storagePath: storagePath,
		companyName: companyName,
		now:         time.Now,
	}
}

// PDF godoc
// @Summary Download an invoice as PDF
// @Tags invoices
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 502 {object} apierror.APIError
// @Router /v1/invoices/{id}/pdf [get]
func (h *InvoiceDocsHandler) PDF(c *gin.Context) {
	doc, err := h.document(c.Request.Context(), c.Param("id"))
	if err != nil {
		upstreamFailure(c, err)
		return
	}

	var buf bytes.Buffer
	if err := infra.WriteInvoicePDF(doc, &buf); err != nil {
		log.Error().Err(err).Str("invoice", doc.Invoice.ID).Msg("invoice: render failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Could not render the invoice"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, documentName(doc.Invoice)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Email renders the invoice to disk and queues it for the mail worker. The
// recipient defaults to the job's client.
func (h *InvoiceDocsHandler) Email(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("Invoice e-mail is not available"))
		return
	}
	var req SendInvoiceRequest
	if c.Request.ContentLength != 0 && !bindAndValidate(c, &req) {
		return
	}

	doc, err := h.document(c.Request.Context(), c.Param("id"))
	if err != nil {
		upstreamFailure(c, err)
		return
	}

	to := req.To
	if to == "" && doc.Client != nil {
		to = doc.Client.Email
	}
	if to == "" {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"to": "required"}))
		return
	}

	path, err := infra.GenerateInvoicePDF(doc, h.storagePath)
	if err != nil {
		log.Error().Err(err).Str("invoice", doc.Invoice.ID).Msg("invoice: render failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Could not render the invoice"))
		return
	}

	payload := worker.InvoiceEmailPayload{
		InvoiceID: doc.Invoice.ID,
		ToEmail:   to,
		Subject:   req.Subject,
		Body:      req.Message,
		PDFPath:   path,
	}
	if payload.Subject == "" {
		payload.Subject = fmt.Sprintf("Invoice %s from %s", documentName(doc.Invoice), doc.CompanyName)
	}
	if payload.Body == "" {
		payload.Body = fmt.Sprintf("Please find attached invoice %s.", documentName(doc.Invoice))
	}
	if err := h.queue.EnqueueInvoiceEmail(c.Request.Context(), payload); err != nil {
		log.Error().Err(err).Str("invoice", doc.Invoice.ID).Msg("invoice: enqueue failed")
		c.JSON(http.StatusServiceUnavailable, apierror.New("Could not queue the e-mail"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Invoice queued for delivery", "to": to})
}

// document gathers what the PDF prints. Only the invoice itself is required;
// the job, client, company and payments are best effort.
func (h *InvoiceDocsHandler) document(ctx context.Context, id string) (infra.InvoiceDocument, error) {
	token := h.tokens.AccessToken()
	inv, err := h.set.Invoices.GetByID(ctx, id, token).Unwrap()
	if err != nil {
		return infra.InvoiceDocument{}, err
	}

	doc := infra.InvoiceDocument{CompanyName: h.companyName, Invoice: inv, IssuedAt: h.now()}

	if company, err := h.set.Company.Get(ctx, token).Unwrap(); err == nil && company.CompanyName != "" {
		doc.CompanyName = company.CompanyName
	}
	if payments, err := h.set.Payments.ByInvoice(ctx, inv.ID, token).Unwrap(); err == nil {
		doc.Payments = payments
	} else {
		log.Warn().Err(err).Str("invoice", inv.ID).Msg("invoice: payments unavailable")
	}

	job := inv.Job.Value
	if job == nil && inv.Job.ID != "" {
		if j, err := h.set.Jobs.GetByID(ctx, inv.Job.ID, token).Unwrap(); err == nil {
			job = &j
		}
	}
	if job == nil {
		return doc, nil
	}
	doc.JobTitle = job.Title
	doc.Client = job.Client.Value
	if doc.Client == nil && job.Client.ID != "" {
		if cl, err := h.set.Clients.GetByID(ctx, job.Client.ID, token).Unwrap(); err == nil {
			doc.Client = &cl
		}
	}
	return doc, nil
}

func documentName(inv model.Invoice) string {
	if inv.Slug != "" {
		return inv.Slug
	}
	return inv.ID
}
