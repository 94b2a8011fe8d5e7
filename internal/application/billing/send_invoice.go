package billing

import (
	"fmt"
	"time"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
)

// EmailInvoice genera el PDF y lo envía al cliente. El destinatario es, en
// orden: el "to" del request, el bill_email del cliente, el email de la
// cuenta. El primer envío exitoso mueve draft -> sent y fija sent_at;
// reenvíos posteriores no tocan el estado. Si el SMTP falla se devuelve
// ErrDeliveryFailed y la factura queda como estaba.
func (uc *InvoiceUseCase) EmailInvoice(companyID, invoiceID string, in dto.EmailInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.findInvoice(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.userRepo.GetByID(invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}

	to := in.To
	if to == "" {
		to = customer.BillingEmail()
	}
	if to == "" {
		return nil, domain.ErrInvalidInput
	}

	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoice.ID)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.pdf.Generate(company, customer, invoice, items)
	if err != nil {
		return nil, err
	}

	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	subject := fmt.Sprintf("Invoice %s", invoice.Number)
	body := fmt.Sprintf(
		"Hello %s,\n\nPlease find attached invoice %s for %s.\nTotal due: $%s\n\nThank you for your business.\n%s",
		customer.FullName(), invoice.Number, invoice.Date.Format("January 2, 2006"),
		invoice.Total.StringFixed(2), companyName,
	)
	attachmentName := fmt.Sprintf("invoice_%s.pdf", invoice.Number)

	if err := uc.mailer.Send(to, subject, body, attachmentName, pdfBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	if invoice.Status == entity.InvoiceStatusDraft {
		now := time.Now()
		invoice.Status = entity.InvoiceStatusSent
		invoice.SentAt = &now
		invoice.UpdatedAt = now
		if err := uc.invoiceRepo.Update(invoice); err != nil {
			return nil, err
		}
	}
	return toInvoiceResponse(invoice, items, nil), nil
}

// GeneratePDF devuelve el PDF de la factura para descarga directa.
func (uc *InvoiceUseCase) GeneratePDF(companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.findInvoice(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.userRepo.GetByID(invoice.CustomerID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoice.ID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdf.Generate(company, customer, invoice, items)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", invoice.Number), nil
}
