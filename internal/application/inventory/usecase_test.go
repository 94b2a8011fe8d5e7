package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/inventory"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, branchID string }

type fakeStockRepo struct {
	rows map[stockKey]*entity.Stock

	lockedReads int
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: map[stockKey]*entity.Stock{}}
}

func (f *fakeStockRepo) Get(productID, branchID string) (*entity.Stock, error) {
	s, ok := f.rows[stockKey{productID, branchID}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, branchID string) (*entity.Stock, error) {
	f.lockedReads++
	return f.Get(productID, branchID)
}

func (f *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	f.rows[stockKey{s.ProductID, s.BranchID}] = &cp
	return nil
}

func (f *fakeStockRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for k, s := range f.rows {
		if k.branchID == branchID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(productID, branchID string, limit, offset int) ([]*entity.StockMovement, error) {
	return f.movements, nil
}

// fakeTxRunner entrega los mismos repos en memoria; los casos de error
// cortan antes de escribir, así que no hace falta simular rollback.
type fakeTxRunner struct {
	stocks    *fakeStockRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(stocks repository.StockRepository, movements repository.StockMovementRepository) error) error {
	return fn(f.stocks, f.movements)
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) Delete(id string) error         { delete(f.products, id); return nil }

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error { f.branches[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return f.branches[id], nil
}
func (f *fakeBranchRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error) {
	return nil, nil
}
func (f *fakeBranchRepo) Update(b *entity.Branch) error { f.branches[b.ID] = b; return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Arranque común
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "co-1"
	productID = "prod-1"
	branchID  = "br-1"
	actorID   = "user-1"
)

func setupStock(t *testing.T) (*inventory.StockUseCase, *fakeStockRepo, *fakeMovementRepo) {
	t.Helper()
	stocks := newFakeStockRepo()
	movements := &fakeMovementRepo{}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		productID: {ID: productID, CompanyID: companyID, Name: "Cebo gel cucarachas"},
	}}
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		branchID: {ID: branchID, CompanyID: companyID, Name: "Bodega central"},
	}}
	tx := &fakeTxRunner{stocks: stocks, movements: movements}
	return inventory.NewStockUseCase(tx, stocks, products, branches), stocks, movements
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func adjust(t *testing.T, uc *inventory.StockUseCase, delta, reason string) (*dto.StockResponse, error) {
	t.Helper()
	return uc.Adjust(context.Background(), companyID, actorID, dto.AdjustStockRequest{
		ProductID: productID,
		BranchID:  branchID,
		Delta:     dec(delta),
		Reason:    reason,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaCreaFilaYMovimiento(t *testing.T) {
	uc, _, movements := setupStock(t)

	resp, err := adjust(t, uc, "10", "restock")
	require.NoError(t, err)

	assert.True(t, resp.Quantity.Equal(dec("10")), "cantidad: %s", resp.Quantity)

	require.Len(t, movements.movements, 1, "cada ajuste deja un movimiento de auditoría")
	mov := movements.movements[0]
	assert.True(t, mov.Delta.Equal(dec("10")))
	assert.Equal(t, "restock", mov.Reason)
	assert.Equal(t, actorID, mov.CreatedBy)
}

func TestAdjust_ConsumoResta(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := adjust(t, uc, "10", "restock")
	require.NoError(t, err)

	resp, err := adjust(t, uc, "-3.5", "field_use")
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(dec("6.5")), "cantidad: %s", resp.Quantity)
}

func TestAdjust_NoBajaDeCero(t *testing.T) {
	uc, stocks, movements := setupStock(t)

	_, err := adjust(t, uc, "5", "restock")
	require.NoError(t, err)

	_, err = adjust(t, uc, "-8", "field_use")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La cantidad queda intacta y no se registró movimiento del intento fallido.
	s, _ := stocks.Get(productID, branchID)
	assert.True(t, s.Quantity.Equal(dec("5")), "cantidad tras fallo: %s", s.Quantity)
	assert.Len(t, movements.movements, 1)
}

func TestAdjust_DeltaCero_InvalidInput(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := adjust(t, uc, "0", "correction")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust_ProductoDeOtraEmpresa_NotFound(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := uc.Adjust(context.Background(), "otra-empresa", actorID, dto.AdjustStockRequest{
		ProductID: productID,
		BranchID:  branchID,
		Delta:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests umbral de reorden
// ──────────────────────────────────────────────────────────────────────────────

func TestReorderLevel_MarcaSoloConUmbralConfigurado(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := adjust(t, uc, "3", "restock")
	require.NoError(t, err)

	// Sin umbral configurado (cero) nunca marca, aunque la cantidad sea baja.
	resp, err := uc.Get(companyID, productID, branchID)
	require.NoError(t, err)
	assert.False(t, resp.NeedsReorder)

	_, err = uc.SetReorderLevel(context.Background(), companyID, dto.SetReorderLevelRequest{
		ProductID:    productID,
		BranchID:     branchID,
		ReorderLevel: dec("5"),
	})
	require.NoError(t, err)

	resp, err = uc.Get(companyID, productID, branchID)
	require.NoError(t, err)
	assert.True(t, resp.NeedsReorder, "3 <= 5 debe marcar reorden")

	_, err = adjust(t, uc, "10", "restock")
	require.NoError(t, err)

	resp, err = uc.Get(companyID, productID, branchID)
	require.NoError(t, err)
	assert.False(t, resp.NeedsReorder, "13 > 5 no marca")
}

func TestReorderLevel_UsaLecturaBloqueadaYConservaCantidad(t *testing.T) {
	uc, stocks, _ := setupStock(t)

	_, err := adjust(t, uc, "7", "restock")
	require.NoError(t, err)
	lockedBefore := stocks.lockedReads

	resp, err := uc.SetReorderLevel(context.Background(), companyID, dto.SetReorderLevelRequest{
		ProductID:    productID,
		BranchID:     branchID,
		ReorderLevel: dec("2"),
	})
	require.NoError(t, err)

	// El umbral se fija sobre la fila bloqueada, no sobre una lectura suelta:
	// la cantidad vigente se conserva tal cual.
	assert.Equal(t, lockedBefore+1, stocks.lockedReads)
	assert.True(t, resp.Quantity.Equal(dec("7")), "cantidad: %s", resp.Quantity)
	assert.True(t, resp.ReorderLevel.Equal(dec("2")))
}

func TestReorderLevel_Negativo_InvalidInput(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := uc.SetReorderLevel(context.Background(), companyID, dto.SetReorderLevelRequest{
		ProductID:    productID,
		BranchID:     branchID,
		ReorderLevel: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_SinFilaPrevia_CantidadCero(t *testing.T) {
	uc, _, _ := setupStock(t)

	resp, err := uc.Get(companyID, productID, branchID)
	require.NoError(t, err)
	assert.True(t, resp.Quantity.IsZero())
	assert.False(t, resp.NeedsReorder)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListByBranch
// ──────────────────────────────────────────────────────────────────────────────

func TestListByBranch_SucursalDeOtraEmpresa_NotFound(t *testing.T) {
	uc, _, _ := setupStock(t)

	_, err := adjust(t, uc, "4", "restock")
	require.NoError(t, err)

	_, err = uc.ListByBranch("otra-empresa", branchID, 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"las existencias de una sucursal ajena no deben ser visibles")

	resp, err := uc.ListByBranch(companyID, branchID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}
