package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. La única transición automática del sistema es
// Draft -> Sent (primer envío de correo exitoso) y -> Paid cuando los pagos
// cubren el total. Void se asigna manualmente.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)

// Invoice representa la cabecera de una factura de servicio.
// Redondeo: TaxAmount = (Subtotal * TaxRate).Round(2) — half-up, alejándose
// de cero, que es lo que hace decimal.Round. Total = Subtotal + TaxAmount.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string // users.id con role=customer
	Number     string
	Date       time.Time
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal // fracción, ej. 0.081
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	Status     string     // ver constantes InvoiceStatus*
	SentAt     *time.Time // primer envío exitoso; nil si nunca se envió
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AmountPaid suma de pagos registrados.
func AmountPaid(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// InvoiceItem representa una línea de la factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity * UnitPrice
}

// Payment representa un pago aplicado a una factura.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // check, card, cash, ach
	Reference string
	PaidAt    time.Time
	CreatedAt time.Time
}
