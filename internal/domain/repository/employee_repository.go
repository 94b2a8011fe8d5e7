package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// EmployeeRepository puerto de persistencia para empleados/técnicos.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Delete(id string) error

	AddDocument(doc *entity.EmployeeDocument) error
	ListDocuments(employeeID string) ([]*entity.EmployeeDocument, error)
}
