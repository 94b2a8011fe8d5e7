package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (insecticidas, cebos, trampas).
// El nombre es único por empresa; las cantidades se manejan por sucursal en Stock.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Unit        string          // presentación: gal, oz, unit...
	UnitCost    decimal.Decimal // costo de reposición por unidad
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
