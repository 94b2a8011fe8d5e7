package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// JobFilter criterios opcionales de listado; campos vacíos no filtran.
type JobFilter struct {
	BranchID     string
	TechnicianID string
	CustomerID   string
	Status       string
}

// JobRepository puerto de persistencia para trabajos agendados.
type JobRepository interface {
	Create(job *entity.Job) error
	GetByID(id string) (*entity.Job, error)
	ListByCompany(companyID string, filter JobFilter, limit, offset int) ([]*entity.Job, error)
	Update(job *entity.Job) error
	Delete(id string) error
}
