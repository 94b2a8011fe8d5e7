package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/usecase"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeJobRepo struct {
	jobs map[string]*entity.Job
}

func (f *fakeJobRepo) Create(j *entity.Job) error { cp := *j; f.jobs[j.ID] = &cp; return nil }
func (f *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}
func (f *fakeJobRepo) ListByCompany(companyID string, filter repository.JobFilter, limit, offset int) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range f.jobs {
		if j.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.TechnicianID != "" && j.TechnicianID != filter.TechnicianID {
			continue
		}
		cp := *j
		out = append(out, &cp)
	}
	return out, nil
}
func (f *fakeJobRepo) Update(j *entity.Job) error { cp := *j; f.jobs[j.ID] = &cp; return nil }
func (f *fakeJobRepo) Delete(id string) error     { delete(f.jobs, id); return nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(u *entity.User) error              { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error)  { return f.users[id], nil }
func (f *fakeUserRepo) GetByEmail(e string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == e {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) Delete(id string) error      { delete(f.users, id); return nil }
func (f *fakeUserRepo) ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.CompanyID != companyID || u.Role != role {
			continue
		}
		if branchID != "" && u.BranchID != branchID {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
}

func (f *fakeEmployeeRepo) Create(e *entity.Employee) error             { f.employees[e.ID] = e; return nil }
func (f *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) { return f.employees[id], nil }
func (f *fakeEmployeeRepo) ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(e *entity.Employee) error { f.employees[e.ID] = e; return nil }
func (f *fakeEmployeeRepo) Delete(id string) error          { delete(f.employees, id); return nil }
func (f *fakeEmployeeRepo) AddDocument(d *entity.EmployeeDocument) error { return nil }
func (f *fakeEmployeeRepo) ListDocuments(employeeID string) ([]*entity.EmployeeDocument, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque común
// ──────────────────────────────────────────────────────────────────────────────

const (
	jobCompanyID = "co-1"
	jobBranchID  = "br-1"
	jobCustID    = "cust-1"
	jobTechID    = "emp-1"
)

func setupJobs(t *testing.T) (*usecase.JobUseCase, *fakeJobRepo) {
	t.Helper()
	jobRepo := &fakeJobRepo{jobs: map[string]*entity.Job{}}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{
		jobCustID: {ID: jobCustID, CompanyID: jobCompanyID, BranchID: jobBranchID, Role: entity.RoleCustomer},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*entity.Employee{
		jobTechID: {ID: jobTechID, CompanyID: jobCompanyID, BranchID: jobBranchID, Position: "technician"},
	}}
	return usecase.NewJobUseCase(jobRepo, userRepo, employeeRepo), jobRepo
}

func jobRequest(startOffset, endOffset time.Duration) dto.CreateJobRequest {
	base := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	return dto.CreateJobRequest{
		BranchID:     jobBranchID,
		CustomerID:   jobCustID,
		TechnicianID: jobTechID,
		Title:        "Servicio general de plagas",
		StartsAt:     base.Add(startOffset),
		EndsAt:       base.Add(endOffset),
	}
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create
// ──────────────────────────────────────────────────────────────────────────────

func TestJobCreate_OK(t *testing.T) {
	uc, _ := setupJobs(t)

	resp, err := uc.Create(jobCompanyID, jobRequest(0, 2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, entity.JobStatusScheduled, resp.Status, "todo trabajo nace agendado")
	assert.Equal(t, jobTechID, resp.TechnicianID)
}

func TestJobCreate_IntervaloInvertido(t *testing.T) {
	uc, _ := setupJobs(t)

	_, err := uc.Create(jobCompanyID, jobRequest(2*time.Hour, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"starts_at debe ser anterior a ends_at")
}

func TestJobCreate_IntervaloVacio(t *testing.T) {
	uc, _ := setupJobs(t)

	_, err := uc.Create(jobCompanyID, jobRequest(time.Hour, time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un intervalo de duración cero no es válido")
}

func TestJobCreate_ClienteNoEsCustomer(t *testing.T) {
	uc, _ := setupJobs(t)

	in := jobRequest(0, time.Hour)
	in.CustomerID = "no-existe"
	_, err := uc.Create(jobCompanyID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobCreate_TecnicoDeOtraEmpresa(t *testing.T) {
	uc, _ := setupJobs(t)

	_, err := uc.Create("otra-empresa", jobRequest(0, time.Hour))
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"los recursos de otra empresa no deben ser visibles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update / scoping por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestJobUpdate_EstadoValido(t *testing.T) {
	uc, _ := setupJobs(t)

	created, err := uc.Create(jobCompanyID, jobRequest(0, time.Hour))
	require.NoError(t, err)

	resp, err := uc.Update(jobCompanyID, created.ID, dto.UpdateJobRequest{
		Status: strPtr(entity.JobStatusCompleted),
		Notes:  strPtr("Tratamiento perimetral completo"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, resp.Status)
	assert.Equal(t, "Tratamiento perimetral completo", resp.Notes)
}

func TestJobUpdate_EstadoDesconocido(t *testing.T) {
	uc, _ := setupJobs(t)

	created, err := uc.Create(jobCompanyID, jobRequest(0, time.Hour))
	require.NoError(t, err)

	_, err = uc.Update(jobCompanyID, created.ID, dto.UpdateJobRequest{
		Status: strPtr("pausado"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobUpdate_RevalidaIntervalo(t *testing.T) {
	uc, _ := setupJobs(t)

	created, err := uc.Create(jobCompanyID, jobRequest(0, time.Hour))
	require.NoError(t, err)

	// Mover ends_at antes de starts_at debe rechazarse.
	bad := created.StartsAt.Add(-time.Hour)
	_, err = uc.Update(jobCompanyID, created.ID, dto.UpdateJobRequest{EndsAt: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobGetByID_OtraEmpresa_NoVisible(t *testing.T) {
	uc, _ := setupJobs(t)

	created, err := uc.Create(jobCompanyID, jobRequest(0, time.Hour))
	require.NoError(t, err)

	resp, err := uc.GetByID("otra-empresa", created.ID)
	require.NoError(t, err)
	assert.Nil(t, resp, "un trabajo de otra empresa no debe ser visible")
}

func TestJobDelete_OtraEmpresa_NotFound(t *testing.T) {
	uc, repo := setupJobs(t)

	created, err := uc.Create(jobCompanyID, jobRequest(0, time.Hour))
	require.NoError(t, err)

	err = uc.Delete("otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, repo.jobs, created.ID, "el trabajo no debe borrarse")
}
