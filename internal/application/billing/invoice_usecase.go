package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// InvoiceUseCase casos de uso de facturación: creación con totales
// calculados en servidor, consulta, listado, pagos y envío por correo.
type InvoiceUseCase struct {
	tx          TxRunner
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	pdf         PDFGenerator
	mailer      Mailer
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	tx TxRunner,
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	pdf PDFGenerator,
	mailer Mailer,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		tx:          tx,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		pdf:         pdf,
		mailer:      mailer,
	}
}

// Create crea una factura en estado draft. Los totales se calculan siempre
// en servidor: subtotal = suma de cantidad*precio por línea,
// impuesto = (subtotal*tasa).Round(2), total = subtotal + impuesto.
// Si el request no trae tasa se usa la configurada en la empresa.
// Cabecera y líneas se insertan en una sola transacción: nunca queda una
// cabecera cuyo total no cuadre con sus líneas.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.findCustomer(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	taxRate := decimal.Zero
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	} else {
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company != nil && company.TaxRate != "" {
			if parsed, err := decimal.NewFromString(company.TaxRate); err == nil {
				taxRate = parsed
			}
		}
	}
	if taxRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	subtotal := decimal.Zero
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lineSubtotal := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(lineSubtotal)
		items = append(items, &entity.InvoiceItem{
			ID:          uuid.New().String(),
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    lineSubtotal,
		})
	}
	taxAmount := subtotal.Mul(taxRate).Round(2)

	now := time.Now()
	invoice := &entity.Invoice{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Number:     in.Number,
		Date:       now,
		Subtotal:   subtotal,
		TaxRate:    taxRate,
		TaxAmount:  taxAmount,
		Total:      subtotal.Add(taxAmount),
		Status:     entity.InvoiceStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.Create(invoice); err != nil {
			return err
		}
		for _, item := range items {
			item.InvoiceID = invoice.ID
			if err := invoices.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice, items, nil)
	resp.CustomerName = customer.FullName()
	return resp, nil
}

// GetByID devuelve la factura con líneas y pagos; nil si no es visible.
func (uc *InvoiceUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.findInvoice(companyID, id)
	if err != nil || invoice == nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoice.ID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.invoiceRepo.GetPaymentsByInvoiceID(invoice.ID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice, items, payments)
	if customer, _ := uc.userRepo.GetByID(invoice.CustomerID); customer != nil {
		resp.CustomerName = customer.FullName()
	}
	return resp, nil
}

// List lista facturas de la empresa; customerID vacío = todas.
func (uc *InvoiceUseCase) List(companyID, customerID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	list, err := uc.invoiceRepo.ListByCompany(companyID, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil, nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// RecordPayment registra un pago. Cuando la suma de pagos alcanza el total y
// la factura no está anulada, el estado pasa a paid. Pago y derivación de
// estado se escriben en la misma transacción.
func (uc *InvoiceUseCase) RecordPayment(ctx context.Context, companyID, invoiceID string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	if in.Amount.IsZero() || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := uc.findInvoice(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.Status == entity.InvoiceStatusVoid {
		return nil, domain.ErrConflict
	}
	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		InvoiceID: invoice.ID,
		Amount:    in.Amount,
		Method:    in.Method,
		Reference: in.Reference,
		PaidAt:    paidAt,
		CreatedAt: time.Now(),
	}
	var payments []*entity.Payment
	err = uc.tx.RunBilling(ctx, func(invoices repository.InvoiceRepository) error {
		if err := invoices.CreatePayment(payment); err != nil {
			return err
		}
		payments, err = invoices.GetPaymentsByInvoiceID(invoice.ID)
		if err != nil {
			return err
		}
		if entity.AmountPaid(payments).GreaterThanOrEqual(invoice.Total) {
			invoice.Status = entity.InvoiceStatusPaid
			invoice.UpdatedAt = time.Now()
			if err := invoices.Update(invoice); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoice.ID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, items, payments), nil
}

// Void anula una factura. Las anuladas no aceptan pagos ni cambian a paid.
func (uc *InvoiceUseCase) Void(companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.findInvoice(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	invoice.Status = entity.InvoiceStatusVoid
	invoice.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice, nil, nil), nil
}

func (uc *InvoiceUseCase) findInvoice(companyID, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil || invoice.CompanyID != companyID {
		return nil, nil
	}
	return invoice, nil
}

func (uc *InvoiceUseCase) findCustomer(companyID, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCustomer || user.CompanyID != companyID {
		return nil, nil
	}
	return user, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem, payments []*entity.Payment) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	resp := &dto.InvoiceResponse{
		ID:         inv.ID,
		CompanyID:  inv.CompanyID,
		CustomerID: inv.CustomerID,
		Number:     inv.Number,
		Date:       inv.Date.Format("2006-01-02"),
		Subtotal:   inv.Subtotal,
		TaxRate:    inv.TaxRate,
		TaxAmount:  inv.TaxAmount,
		Total:      inv.Total,
		Status:     inv.Status,
		SentAt:     inv.SentAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			Reference: p.Reference,
			PaidAt:    p.PaidAt,
		})
	}
	return resp
}
