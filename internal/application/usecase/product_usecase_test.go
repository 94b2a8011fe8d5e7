package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/usecase"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { cp := *p; f.products[p.ID] = &cp; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProductRepo) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { cp := *p; f.products[p.ID] = &cp; return nil }
func (f *fakeProductRepo) Delete(id string) error         { delete(f.products, id); return nil }

func setupProducts(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo) {
	t.Helper()
	repo := &fakeProductRepo{products: map[string]*entity.Product{}}
	return usecase.NewProductUseCase(repo), repo
}

func TestProductCreate_OK(t *testing.T) {
	uc, _ := setupProducts(t)

	resp, err := uc.Create("co-1", dto.CreateProductRequest{
		Name:     "Bifentrina 7.9%",
		Unit:     "gal",
		UnitCost: decimal.RequireFromString("42.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bifentrina 7.9%", resp.Name)
	assert.Equal(t, "co-1", resp.CompanyID)
}

func TestProductCreate_NombreDuplicadoEnLaEmpresa(t *testing.T) {
	uc, repo := setupProducts(t)

	_, err := uc.Create("co-1", dto.CreateProductRequest{Name: "Bifentrina 7.9%"})
	require.NoError(t, err)

	_, err = uc.Create("co-1", dto.CreateProductRequest{Name: "Bifentrina 7.9%"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, repo.products, 1, "el duplicado rechazado no debe dejar fila")
}

func TestProductCreate_MismoNombreOtraEmpresa_OK(t *testing.T) {
	uc, _ := setupProducts(t)

	_, err := uc.Create("co-1", dto.CreateProductRequest{Name: "Bifentrina 7.9%"})
	require.NoError(t, err)

	// La unicidad del nombre es por empresa, no global.
	_, err = uc.Create("co-2", dto.CreateProductRequest{Name: "Bifentrina 7.9%"})
	assert.NoError(t, err)
}

func TestProductCreate_SinNombre(t *testing.T) {
	uc, _ := setupProducts(t)

	_, err := uc.Create("co-1", dto.CreateProductRequest{Unit: "gal"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_RenameRespetaUnicidad(t *testing.T) {
	uc, _ := setupProducts(t)

	_, err := uc.Create("co-1", dto.CreateProductRequest{Name: "Cebo A"})
	require.NoError(t, err)
	created, err := uc.Create("co-1", dto.CreateProductRequest{Name: "Cebo B"})
	require.NoError(t, err)

	_, err = uc.Update("co-1", created.ID, dto.UpdateProductRequest{Name: strPtr("Cebo A")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductGetByID_OtraEmpresa_NoVisible(t *testing.T) {
	uc, _ := setupProducts(t)

	created, err := uc.Create("co-1", dto.CreateProductRequest{Name: "Cebo A"})
	require.NoError(t, err)

	resp, err := uc.GetByID("co-2", created.ID)
	require.NoError(t, err)
	assert.Nil(t, resp)
}
