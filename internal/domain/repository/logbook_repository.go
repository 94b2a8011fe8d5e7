package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// LogbookRepository puerto de persistencia para reportes de incidentes.
type LogbookRepository interface {
	Create(report *entity.LogbookReport) error
	GetByID(id string) (*entity.LogbookReport, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.LogbookReport, error)
}
