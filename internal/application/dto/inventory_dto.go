package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto de catálogo.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// UpdateProductRequest actualización parcial de producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
}

// ProductResponse proyección de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// AdjustStockRequest ajuste firmado de existencias: delta positivo = entrada,
// negativo = consumo.
type AdjustStockRequest struct {
	ProductID string          `json:"product_id"`
	BranchID  string          `json:"branch_id"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason"`
}

// SetReorderLevelRequest fija el umbral de reorden de una existencia.
type SetReorderLevelRequest struct {
	ProductID    string          `json:"product_id"`
	BranchID     string          `json:"branch_id"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// StockResponse existencia de un producto en una sucursal.
type StockResponse struct {
	ProductID    string          `json:"product_id"`
	BranchID     string          `json:"branch_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	NeedsReorder bool            `json:"needs_reorder"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse listado paginado de existencias.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
