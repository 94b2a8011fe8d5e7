package logbook_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/logbook"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
)

type fakeLogbookRepo struct {
	reports map[string]*entity.LogbookReport

	failCreate bool
}

func (f *fakeLogbookRepo) Create(r *entity.LogbookReport) error {
	if f.failCreate {
		return errors.New("insert reporte: connection reset")
	}
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeLogbookRepo) GetByID(id string) (*entity.LogbookReport, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLogbookRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.LogbookReport, error) {
	var out []*entity.LogbookReport
	for _, r := range f.reports {
		if r.BranchID == branchID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeFileStore registra guardados y borrados sin tocar disco.
type fakeFileStore struct {
	saved   []string
	removed []string
}

func (f *fakeFileStore) Save(branchID, originalName string, data []byte) (string, error) {
	stored := "stored_" + originalName
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeFileStore) URL(branchID, storedName string) string {
	return "/uploads/branch_" + branchID + "/" + storedName
}

func (f *fakeFileStore) Remove(branchID, storedName string) error {
	f.removed = append(f.removed, storedName)
	return nil
}

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

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) Update(u *entity.User) error                   { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error                        { delete(f.users, id); return nil }
func (f *fakeUserRepo) ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

const companyID = "co-1"

func setupLogbook(t *testing.T) (*logbook.UseCase, *fakeLogbookRepo, *fakeFileStore) {
	t.Helper()
	repo := &fakeLogbookRepo{reports: map[string]*entity.LogbookReport{}}
	files := &fakeFileStore{}
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		"br-1": {ID: "br-1", CompanyID: companyID, Name: "Edificio Norte"},
		"br-2": {ID: "br-2", CompanyID: companyID, Name: "Edificio Sur"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"cust-1": {ID: "cust-1", CompanyID: companyID, Role: entity.RoleCustomer},
	}}
	return logbook.NewUseCase(repo, files, branches, users), repo, files
}

func TestLogbookCreate_ConFoto(t *testing.T) {
	uc, _, files := setupLogbook(t)

	resp, err := uc.Create(dto.CreateLogbookRequest{
		BranchID:     "br-1",
		Subject:      "Cucarachas en el apartamento 3B",
		Description:  "Avistadas en la cocina durante la noche",
		ReporterName: "Inquilino 3B",
	}, "foto.jpg", []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)

	assert.Equal(t, "Cucarachas en el apartamento 3B", resp.Subject)
	assert.NotEmpty(t, resp.PhotoURL, "con foto subida debe exponerse la URL")
	assert.Len(t, files.saved, 1)
}

func TestLogbookCreate_SinFoto_OK(t *testing.T) {
	uc, _, files := setupLogbook(t)

	resp, err := uc.Create(dto.CreateLogbookRequest{
		CustomerID: "cust-1",
		Subject:    "Hormigas en la bodega",
	}, "", nil)
	require.NoError(t, err)

	assert.Empty(t, resp.PhotoURL)
	assert.Empty(t, files.saved, "sin foto no se guarda nada")
}

func TestLogbookCreate_SinUbicacion_InvalidInput(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	_, err := uc.Create(dto.CreateLogbookRequest{Subject: "Sin sucursal ni cliente"}, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"se exige branch_id o customer_id")
}

func TestLogbookCreate_SinAsunto_InvalidInput(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	_, err := uc.Create(dto.CreateLogbookRequest{BranchID: "br-1"}, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogbookCreate_InsertFallido_BorraLaFoto(t *testing.T) {
	uc, repo, files := setupLogbook(t)
	repo.failCreate = true

	_, err := uc.Create(dto.CreateLogbookRequest{
		BranchID: "br-1",
		Subject:  "Roedores en el sótano",
	}, "evidencia.jpg", []byte{0xFF, 0xD8, 0xFF})
	require.Error(t, err)

	// La foto se escribe antes del insert; si este falla no debe quedar
	// ningún archivo huérfano en el almacén.
	require.Len(t, files.saved, 1)
	assert.Equal(t, files.saved, files.removed)
	assert.Empty(t, repo.reports)
}

func TestLogbookGetByID_NoExiste_NotFound(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	_, err := uc.GetByID(companyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogbookGetByID_OtraEmpresa_NotFound(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	branchReport, err := uc.Create(dto.CreateLogbookRequest{BranchID: "br-1", Subject: "Termitas"}, "", nil)
	require.NoError(t, err)
	customerReport, err := uc.Create(dto.CreateLogbookRequest{CustomerID: "cust-1", Subject: "Avispas"}, "", nil)
	require.NoError(t, err)

	_, err = uc.GetByID("otra-empresa", branchReport.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un reporte ligado a una sucursal ajena no debe ser visible")
	_, err = uc.GetByID("otra-empresa", customerReport.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un reporte ligado a un cliente ajeno no debe ser visible")

	got, err := uc.GetByID(companyID, branchReport.ID)
	require.NoError(t, err)
	assert.Equal(t, "Termitas", got.Subject)
}

func TestLogbookListByBranch(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	_, err := uc.Create(dto.CreateLogbookRequest{BranchID: "br-1", Subject: "Reporte 1"}, "", nil)
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateLogbookRequest{BranchID: "br-2", Subject: "Reporte 2"}, "", nil)
	require.NoError(t, err)

	out, err := uc.ListByBranch(companyID, "br-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Reporte 1", out.Items[0].Subject)
}

func TestLogbookListByBranch_SucursalDeOtraEmpresa_NotFound(t *testing.T) {
	uc, _, _ := setupLogbook(t)

	_, err := uc.Create(dto.CreateLogbookRequest{BranchID: "br-1", Subject: "Reporte"}, "", nil)
	require.NoError(t, err)

	_, err = uc.ListByBranch("otra-empresa", "br-1", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
