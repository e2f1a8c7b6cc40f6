package infra

// pdf.go renders an A4 invoice with go-pdf/fpdf:
//   - company header and invoice title
//   - client and job
//   - product lines (sales) and labour lines (job cards)
//   - subtotal, tax, total, paid and balance
//
// GenerateInvoicePDF writes it to storagePath/invoice_<slug>_<id>.pdf;
// WriteInvoicePDF streams it for downloads.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"repairs/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDocument is everything printed on an invoice. Refs inside Invoice
// must be resolved for their lines to appear.
type InvoiceDocument struct {
	CompanyName string
	Invoice     model.Invoice
	Client      *model.Client
	JobTitle    string
	Payments    []model.Payment
	IssuedAt    time.Time
}

// GenerateInvoicePDF writes the invoice to storagePath, creating it if needed,
// and returns the file path.
func GenerateInvoicePDF(doc InvoiceDocument, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	name := doc.Invoice.Slug
	if name == "" {
		name = doc.Invoice.ID
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("invoice_%s_%s.pdf", name, uuid.NewString()[:8]))

	pdf := buildInvoice(doc)
	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func WriteInvoicePDF(doc InvoiceDocument, w io.Writer) error {
	if err := buildInvoice(doc).Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}

func buildInvoice(doc InvoiceDocument) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, tr(doc.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW/2, 6, tr("Invoice: "+doc.Invoice.Title), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Date: "+issued(doc).Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	if doc.Invoice.Slug != "" {
		pdf.CellFormat(contentW, 6, "Ref: "+doc.Invoice.Slug, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 6, "Status: "+string(doc.Invoice.Status), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	if doc.Client != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Bill to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, tr(doc.Client.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, tr(doc.Client.Email+"  "+doc.Client.PhoneNumber), "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, tr(doc.Client.Location), "", 1, "L", false, 0, "")
	}
	if doc.JobTitle != "" {
		pdf.CellFormat(contentW, 5, tr("Job: "+doc.JobTitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Lines
	col1 := contentW * 0.46
	col2 := contentW * 0.12
	col3 := contentW * 0.2
	col4 := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(col1, 7, "Item", "B", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "Unit", "B", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, ref := range doc.Invoice.Products {
		if ref.Value == nil {
			continue
		}
		sale := ref.Value
		title := sale.Product.ID
		if sale.Product.Value != nil {
			title = sale.Product.Value.Title
		}
		pdf.CellFormat(col1, 6, tr(truncate(title, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", sale.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, sale.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, sale.LineTotal().StringFixed(2), "", 1, "R", false, 0, "")
	}
	for _, ref := range doc.Invoice.Cards {
		if ref.Value == nil {
			continue
		}
		card := ref.Value
		who := card.Contractor.ID
		if card.Contractor.Value != nil {
			who = card.Contractor.Value.Name
		}
		pdf.CellFormat(col1, 6, tr(truncate("Labour: "+who, 48)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, "1", "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, card.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, card.Price.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// Totals
	totals := doc.Invoice.ComputeTotals()
	label := col1 + col2 + col3
	row := func(name string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(label, 6, name, "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, v.StringFixed(2), "", 1, "R", false, 0, "")
	}
	row("Subtotal", totals.Subtotal, false)
	row("Tax", totals.Tax, false)
	row("Total", doc.Invoice.Total, true)

	if len(doc.Payments) > 0 {
		paid := doc.Invoice.Total.Sub(doc.Invoice.Balance(doc.Payments))
		row("Paid", paid, false)
		row("Balance due", doc.Invoice.Balance(doc.Payments), true)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your business.", "", 1, "C", false, 0, "")
	return pdf
}

func issued(doc InvoiceDocument) time.Time {
	if !doc.IssuedAt.IsZero() {
		return doc.IssuedAt
	}
	if doc.Invoice.CreatedAt != nil {
		return *doc.Invoice.CreatedAt
	}
	return time.Now()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
