package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// JobUseCase casos de uso CRUD para trabajos agendados.
type JobUseCase struct {
	repo         repository.JobRepository
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(repo repository.JobRepository, userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) *JobUseCase {
	return &JobUseCase{repo: repo, userRepo: userRepo, employeeRepo: employeeRepo}
}

// Create crea un trabajo validando cliente, técnico e intervalo.
// El intervalo debe cumplir starts_at < ends_at.
func (uc *JobUseCase) Create(companyID string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.BranchID == "" || in.CustomerID == "" || in.TechnicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() || !in.StartsAt.Before(in.EndsAt) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.userRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != entity.RoleCustomer || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	tech, err := uc.employeeRepo.GetByID(in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if tech == nil || tech.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	job := &entity.Job{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		BranchID:     in.BranchID,
		CustomerID:   in.CustomerID,
		TechnicianID: in.TechnicianID,
		Title:        in.Title,
		Notes:        in.Notes,
		StartsAt:     in.StartsAt,
		EndsAt:       in.EndsAt,
		Status:       entity.JobStatusScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// GetByID obtiene un trabajo; nil si no existe o es de otra empresa.
func (uc *JobUseCase) GetByID(companyID, id string) (*dto.JobResponse, error) {
	job, err := uc.findJob(companyID, id)
	if err != nil || job == nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// List lista trabajos filtrando opcionalmente por sucursal, técnico, cliente y estado.
func (uc *JobUseCase) List(companyID string, filter repository.JobFilter, limit, offset int) (*dto.JobListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobResponse, 0, len(list))
	for _, j := range list {
		items = append(items, *toJobResponse(j))
	}
	return &dto.JobListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica actualización parcial. Si cambian las horas se revalida el intervalo.
func (uc *JobUseCase) Update(companyID, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := uc.findJob(companyID, id)
	if err != nil || job == nil {
		return nil, err
	}
	if in.TechnicianID != nil {
		tech, err := uc.employeeRepo.GetByID(*in.TechnicianID)
		if err != nil {
			return nil, err
		}
		if tech == nil || tech.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		job.TechnicianID = *in.TechnicianID
	}
	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Notes != nil {
		job.Notes = *in.Notes
	}
	if in.StartsAt != nil {
		job.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		job.EndsAt = *in.EndsAt
	}
	if !job.StartsAt.Before(job.EndsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.JobStatusScheduled, entity.JobStatusInProgress,
			entity.JobStatusCompleted, entity.JobStatusCancelled:
			job.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	job.UpdatedAt = time.Now()
	if err := uc.repo.Update(job); err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// Delete elimina un trabajo. ErrNotFound si no es visible para la empresa.
func (uc *JobUseCase) Delete(companyID, id string) error {
	job, err := uc.findJob(companyID, id)
	if err != nil {
		return err
	}
	if job == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func (uc *JobUseCase) findJob(companyID, id string) (*entity.Job, error) {
	job, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil || job.CompanyID != companyID {
		return nil, nil
	}
	return job, nil
}

func toJobResponse(j *entity.Job) *dto.JobResponse {
	if j == nil {
		return nil
	}
	return &dto.JobResponse{
		ID:           j.ID,
		CompanyID:    j.CompanyID,
		BranchID:     j.BranchID,
		CustomerID:   j.CustomerID,
		TechnicianID: j.TechnicianID,
		Title:        j.Title,
		Notes:        j.Notes,
		StartsAt:     j.StartsAt,
		EndsAt:       j.EndsAt,
		Status:       j.Status,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
