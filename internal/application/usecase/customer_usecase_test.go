package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/usecase"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
)

func setupCustomers(t *testing.T) (*usecase.CustomerUseCase, *fakeUserRepo) {
	t.Helper()
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	return usecase.NewCustomerUseCase(userRepo), userRepo
}

func TestCustomerCreate_RolCustomerYHashTemporal(t *testing.T) {
	uc, repo := setupCustomers(t)

	resp, err := uc.Create("co-1", dto.CreateCustomerRequest{
		BranchID:  "br-1",
		Email:     "cliente@ejemplo.com",
		FirstName: "Ana",
		LastName:  "Ruiz",
		BillEmail: "pagos@ejemplo.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "co-1", resp.CompanyID)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "pagos@ejemplo.com", resp.BillEmail)

	stored := repo.users[resp.ID]
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleCustomer, stored.Role, "todo cliente es un user con role=customer")
	assert.NotEmpty(t, stored.PasswordHash, "se asigna contraseña temporal hasheada")
}

func TestCustomerCreate_EmailDuplicado(t *testing.T) {
	uc, _ := setupCustomers(t)

	_, err := uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-1", Email: "cliente@ejemplo.com"})
	require.NoError(t, err)

	_, err = uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-2", Email: "cliente@ejemplo.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCustomerCreate_SinSucursal(t *testing.T) {
	uc, _ := setupCustomers(t)

	_, err := uc.Create("co-1", dto.CreateCustomerRequest{Email: "cliente@ejemplo.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"todo cliente pertenece a exactamente una sucursal")
}

func TestCustomerList_FiltraPorSucursal(t *testing.T) {
	uc, _ := setupCustomers(t)

	_, err := uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-1", Email: "a@ejemplo.com"})
	require.NoError(t, err)
	_, err = uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-2", Email: "b@ejemplo.com"})
	require.NoError(t, err)

	all, err := uc.List("co-1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2, "sin filtro se listan todas las sucursales")

	br1, err := uc.List("co-1", "br-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, br1.Items, 1)
	assert.Equal(t, "a@ejemplo.com", br1.Items[0].Email)
}

func TestCustomerUpdate_ActualizaBloqueBillTo(t *testing.T) {
	uc, _ := setupCustomers(t)

	created, err := uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-1", Email: "cliente@ejemplo.com"})
	require.NoError(t, err)

	resp, err := uc.Update("co-1", created.ID, dto.UpdateCustomerRequest{
		BillName:  strPtr("Plaza Comercial Norte SA"),
		BillEmail: strPtr("facturas@plazanorte.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Plaza Comercial Norte SA", resp.BillName)
	assert.Equal(t, "facturas@plazanorte.com", resp.BillEmail)
	assert.Equal(t, "cliente@ejemplo.com", resp.Email, "el email de la cuenta no cambia por esta vía")
}

func TestCustomerDelete_OtraEmpresa_NotFound(t *testing.T) {
	uc, repo := setupCustomers(t)

	created, err := uc.Create("co-1", dto.CreateCustomerRequest{BranchID: "br-1", Email: "cliente@ejemplo.com"})
	require.NoError(t, err)

	err = uc.Delete("co-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, repo.users, created.ID)
}
