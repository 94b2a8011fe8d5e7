package inventory

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

// TxRunner ejecuta fn dentro de una transacción de base de datos y entrega
// repositorios ligados a esa transacción. Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(stocks repository.StockRepository, movements repository.StockMovementRepository) error) error
}

// StockUseCase casos de uso de existencias por sucursal: ajustes firmados
// atómicos, umbral de reorden y listados.
type StockUseCase struct {
	tx          TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(tx TxRunner, stockRepo repository.StockRepository, productRepo repository.ProductRepository, branchRepo repository.BranchRepository) *StockUseCase {
	return &StockUseCase{tx: tx, stockRepo: stockRepo, productRepo: productRepo, branchRepo: branchRepo}
}

// Adjust aplica un ajuste firmado de existencias. La fila se bloquea con
// SELECT FOR UPDATE, el resultado nunca baja de cero (ErrInsufficientStock)
// y el movimiento de auditoría se escribe en la misma transacción.
func (uc *StockUseCase) Adjust(ctx context.Context, companyID, actorID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.BranchID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	var result *entity.Stock
	err = uc.tx.Run(ctx, func(stocks repository.StockRepository, movements repository.StockMovementRepository) error {
		stock, err := stocks.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = &entity.Stock{
				ProductID: in.ProductID,
				BranchID:  in.BranchID,
				Quantity:  decimal.Zero,
			}
		}
		newQty := stock.Quantity.Add(in.Delta)
		if newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		stock.Quantity = newQty
		stock.UpdatedAt = time.Now()
		if err := stocks.Upsert(stock); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			BranchID:  in.BranchID,
			Delta:     in.Delta,
			Reason:    in.Reason,
			CreatedAt: time.Now(),
			CreatedBy: actorID,
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// SetReorderLevel fija el umbral de reorden sin tocar la cantidad. La fila se
// bloquea con SELECT FOR UPDATE: un ajuste concurrente no se pierde por una
// lectura desfasada.
func (uc *StockUseCase) SetReorderLevel(ctx context.Context, companyID string, in dto.SetReorderLevelRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.BranchID == "" || in.ReorderLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	var result *entity.Stock
	err = uc.tx.Run(ctx, func(stocks repository.StockRepository, _ repository.StockMovementRepository) error {
		stock, err := stocks.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = &entity.Stock{
				ProductID: in.ProductID,
				BranchID:  in.BranchID,
				Quantity:  decimal.Zero,
			}
		}
		stock.ReorderLevel = in.ReorderLevel
		stock.UpdatedAt = time.Now()
		if err := stocks.Upsert(stock); err != nil {
			return err
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// Get devuelve la existencia de un producto en una sucursal. Sin fila previa
// se reporta cantidad cero.
func (uc *StockUseCase) Get(companyID, productID, branchID string) (*dto.StockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.Get(productID, branchID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.Stock{ProductID: productID, BranchID: branchID, Quantity: decimal.Zero}
	}
	return toStockResponse(stock), nil
}

// ListByBranch lista existencias de una sucursal con paginación. La sucursal
// debe pertenecer a la empresa del solicitante: ErrNotFound en otro caso.
func (uc *StockUseCase) ListByBranch(companyID, branchID string, limit, offset int) (*dto.StockListResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.stockRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ProductID:    s.ProductID,
		BranchID:     s.BranchID,
		Quantity:     s.Quantity,
		ReorderLevel: s.ReorderLevel,
		NeedsReorder: s.NeedsReorder(),
		UpdatedAt:    s.UpdatedAt,
	}
}
