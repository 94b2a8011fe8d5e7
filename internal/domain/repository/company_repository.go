package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// CompanyRepository puerto de persistencia para empresas (tenants).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
}

// BranchRepository puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Branch, error)
	Update(branch *entity.Branch) error
}
