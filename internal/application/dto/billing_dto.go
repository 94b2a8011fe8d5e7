package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceItemRequest línea de factura de entrada.
type CreateInvoiceItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest alta de factura. Si TaxRate es nil se usa la tasa
// configurada de la empresa.
type CreateInvoiceRequest struct {
	CustomerID string                     `json:"customer_id"`
	Number     string                     `json:"number"`
	TaxRate    *decimal.Decimal           `json:"tax_rate"`
	Items      []CreateInvoiceItemRequest `json:"items"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pago aplicado a una factura.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// InvoiceResponse proyección completa de una factura.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CompanyID    string                `json:"company_id"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Number       string                `json:"number"`
	Date         string                `json:"date"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	TaxRate      decimal.Decimal       `json:"tax_rate"`
	TaxAmount    decimal.Decimal       `json:"tax_amount"`
	Total        decimal.Decimal       `json:"total"`
	Status       string                `json:"status"`
	SentAt       *time.Time            `json:"sent_at,omitempty"`
	Items        []InvoiceItemResponse `json:"items,omitempty"`
	Payments     []PaymentResponse     `json:"payments,omitempty"`
}

// InvoiceListResponse listado paginado de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RecordPaymentRequest registro de pago.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
}

// EmailInvoiceRequest destinatario opcional; vacío = bill_email del cliente
// con fallback al email de la cuenta.
type EmailInvoiceRequest struct {
	To string `json:"to"`
}
