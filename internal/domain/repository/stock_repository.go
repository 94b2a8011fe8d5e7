package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// StockRepository puerto de persistencia para existencias por sucursal.
type StockRepository interface {
	Get(productID, branchID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(productID, branchID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Stock, error)
}

// StockMovementRepository puerto para el historial de ajustes firmados.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByProduct(productID, branchID string, limit, offset int) ([]*entity.StockMovement, error)
}
