package billing

import (
	"context"

	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de base de datos con un
// repositorio de facturación atado a esa transacción. Si fn devuelve error se
// hace rollback: cabecera, líneas y pagos se escriben todo-o-nada.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(invoices repository.InvoiceRepository) error) error
}

// Mailer puerto de envío de correo saliente con un adjunto opcional.
type Mailer interface {
	Send(to, subject, body string, attachmentName string, attachment []byte) error
}

// PDFGenerator puerto de generación del PDF de una factura.
type PDFGenerator interface {
	Generate(company *entity.Company, customer *entity.User, invoice *entity.Invoice, items []*entity.InvoiceItem) ([]byte, error)
}
