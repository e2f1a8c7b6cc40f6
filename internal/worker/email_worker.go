package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// InvoiceEmailPayload describes a rendered invoice waiting to be mailed.
type InvoiceEmailPayload struct {
	InvoiceID string `json:"invoice_id"`
	ToEmail   string `json:"to_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	PDFPath   string `json:"pdf_path"`
}

// Sender delivers one invoice e-mail; infra.Mailer implements it.
type Sender interface {
	SendInvoice(to, subject, body, pdfPath string) error
}

type InvoiceEmailWorker struct {
	sender Sender
}

func NewInvoiceEmailWorker(sender Sender) *InvoiceEmailWorker {
	return &InvoiceEmailWorker{sender: sender}
}

// ErrPermanent marks failures no retry can fix; such jobs go straight to the
// dead letter queue.
var ErrPermanent = errors.New("permanent failure")

func (w *InvoiceEmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p InvoiceEmailPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: invalid payload: %v", ErrPermanent, err)
	}
	if p.ToEmail == "" {
		return fmt.Errorf("%w: empty to_email", ErrPermanent)
	}
	if p.PDFPath != "" {
		if _, err := os.Stat(p.PDFPath); err != nil {
			return fmt.Errorf("%w: invoice PDF missing: %v", ErrPermanent, err)
		}
	}

	if err := w.sender.SendInvoice(p.ToEmail, p.Subject, p.Body, p.PDFPath); err != nil {
		return err
	}
	log.Info().Str("invoice", p.InvoiceID).Str("to", p.ToEmail).Msg("invoice_email: sent")
	return nil
}
