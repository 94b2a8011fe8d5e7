package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, company_id, branch_id, email, password_hash, role, status,
	first_name, last_name, phone1, phone2, company_name, address, city, state, zip,
	bill_name, bill_email, bill_phone, bill_address, bill_city, bill_state, bill_zip,
	multi_unit, recurrence, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Cubre todas las cuentas, incluidos los clientes (role=customer) con su
// bloque de facturación.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para cuentas.
// Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste una nueva cuenta.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.CompanyID, user.BranchID, user.Email, user.PasswordHash, user.Role, user.Status,
		user.FirstName, user.LastName, user.Phone1, user.Phone2, user.CompanyName,
		user.Address, user.City, user.State, user.Zip,
		user.BillName, user.BillEmail, user.BillPhone, user.BillAddress, user.BillCity, user.BillState, user.BillZip,
		user.MultiUnit, user.Recurrence, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail obtiene una cuenta por email (único global).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// Update actualiza una cuenta completa (el caso de uso decide qué campos cambian).
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET branch_id = $2, email = $3, password_hash = $4, role = $5, status = $6,
			first_name = $7, last_name = $8, phone1 = $9, phone2 = $10, company_name = $11,
			address = $12, city = $13, state = $14, zip = $15,
			bill_name = $16, bill_email = $17, bill_phone = $18, bill_address = $19,
			bill_city = $20, bill_state = $21, bill_zip = $22,
			multi_unit = $23, recurrence = $24, updated_at = $25
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.BranchID, user.Email, user.PasswordHash, user.Role, user.Status,
		user.FirstName, user.LastName, user.Phone1, user.Phone2, user.CompanyName,
		user.Address, user.City, user.State, user.Zip,
		user.BillName, user.BillEmail, user.BillPhone, user.BillAddress,
		user.BillCity, user.BillState, user.BillZip,
		user.MultiUnit, user.Recurrence, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina una cuenta por ID.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListByRole lista cuentas de una empresa por rol; branchID vacío = todas las sucursales.
func (r *UserRepo) ListByRole(companyID, role, branchID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1 AND role = $2 AND ($3 = '' OR branch_id = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, companyID, role, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (r *UserRepo) scanRow(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.BranchID, &u.Email, &u.PasswordHash, &u.Role, &u.Status,
		&u.FirstName, &u.LastName, &u.Phone1, &u.Phone2, &u.CompanyName,
		&u.Address, &u.City, &u.State, &u.Zip,
		&u.BillName, &u.BillEmail, &u.BillPhone, &u.BillAddress, &u.BillCity, &u.BillState, &u.BillZip,
		&u.MultiUnit, &u.Recurrence, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
