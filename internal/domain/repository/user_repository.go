package repository

import "github.com/azex/pestops-api/internal/domain/entity"

// UserRepository puerto de persistencia para cuentas (incluye clientes, role=customer).
// Las implementaciones devuelven (nil, nil) cuando el recurso no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error

	// ListByRole lista cuentas de una empresa por rol; branchID vacío = todas las sucursales.
	ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error)
}
