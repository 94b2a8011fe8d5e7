package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, branch_id, first_name, last_name, email, phone, position,
	pay_type, hourly_rate, salary, commission_rate, employment_status, hire_date, photo_file,
	created_at, updated_at`

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.BranchID, employee.FirstName, employee.LastName,
		employee.Email, employee.Phone, employee.Position,
		employee.PayType, employee.HourlyRate, employee.Salary, employee.CommissionRate,
		employee.EmploymentStatus, employee.HireDate, employee.PhotoFile,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.BranchID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position,
		&e.PayType, &e.HourlyRate, &e.Salary, &e.CommissionRate, &e.EmploymentStatus,
		&e.HireDate, &e.PhotoFile, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// ListByCompany lista empleados; branchID vacío = todas las sucursales.
func (r *EmployeeRepo) ListByCompany(companyID, branchID string, limit, offset int) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND ($2 = '' OR branch_id = $2)
		ORDER BY last_name, first_name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.BranchID, &e.FirstName, &e.LastName,
			&e.Email, &e.Phone, &e.Position, &e.PayType, &e.HourlyRate, &e.Salary,
			&e.CommissionRate, &e.EmploymentStatus, &e.HireDate, &e.PhotoFile,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza un empleado.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET branch_id = $2, first_name = $3, last_name = $4, email = $5,
			phone = $6, position = $7, pay_type = $8, hourly_rate = $9, salary = $10,
			commission_rate = $11, employment_status = $12, hire_date = $13, photo_file = $14,
			updated_at = $15
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.BranchID, employee.FirstName, employee.LastName, employee.Email,
		employee.Phone, employee.Position, employee.PayType, employee.HourlyRate, employee.Salary,
		employee.CommissionRate, employee.EmploymentStatus, employee.HireDate, employee.PhotoFile,
		employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// AddDocument registra un documento subido de un empleado.
func (r *EmployeeRepo) AddDocument(doc *entity.EmployeeDocument) error {
	query := `
		INSERT INTO employee_documents (id, employee_id, name, file_name, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.EmployeeID, doc.Name, doc.FileName, doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee document: %w", err)
	}
	return nil
}

// ListDocuments lista documentos de un empleado, más recientes primero.
func (r *EmployeeRepo) ListDocuments(employeeID string) ([]*entity.EmployeeDocument, error) {
	query := `
		SELECT id, employee_id, name, file_name, uploaded_at
		FROM employee_documents WHERE employee_id = $1 ORDER BY uploaded_at DESC`
	rows, err := r.q.Query(context.Background(), query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list employee documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmployeeDocument
	for rows.Next() {
		var d entity.EmployeeDocument
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Name, &d.FileName, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan employee document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
