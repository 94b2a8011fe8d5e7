package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia de un producto en una sucursal.
// Única por (product_id, branch_id); Quantity nunca baja de cero.
type Stock struct {
	ProductID    string
	BranchID     string
	Quantity     decimal.Decimal
	ReorderLevel decimal.Decimal // umbral de reorden; Quantity <= ReorderLevel marca la fila
	UpdatedAt    time.Time
}

// NeedsReorder indica si la existencia está en o por debajo del umbral.
// Con umbral cero (no configurado) nunca marca.
func (s *Stock) NeedsReorder() bool {
	return s.ReorderLevel.IsPositive() && s.Quantity.LessThanOrEqual(s.ReorderLevel)
}

// StockMovement registra un ajuste firmado de existencias (auditoría).
// Delta positivo = entrada, negativo = consumo en campo.
type StockMovement struct {
	ID        string
	ProductID string
	BranchID  string
	Delta     decimal.Decimal
	Reason    string // restock, field_use, correction...
	CreatedAt time.Time
	CreatedBy string // users.id del operador
}
