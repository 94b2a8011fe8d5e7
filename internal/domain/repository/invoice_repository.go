package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas, líneas y pagos.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCompany(companyID, customerID string, limit, offset int) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error

	CreatePayment(payment *entity.Payment) error
	GetPaymentsByInvoiceID(invoiceID string) ([]*entity.Payment, error)
}
