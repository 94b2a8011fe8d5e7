package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest alta de empleado/técnico.
type CreateEmployeeRequest struct {
	BranchID       string           `json:"branch_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	Position       string           `json:"position"`
	PayType        string           `json:"pay_type"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate"`
	Salary         *decimal.Decimal `json:"salary"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	HireDate       *time.Time       `json:"hire_date"`
}

// UpdateEmployeeRequest actualización parcial de empleado.
type UpdateEmployeeRequest struct {
	BranchID         *string          `json:"branch_id"`
	FirstName        *string          `json:"first_name"`
	LastName         *string          `json:"last_name"`
	Email            *string          `json:"email"`
	Phone            *string          `json:"phone"`
	Position         *string          `json:"position"`
	PayType          *string          `json:"pay_type"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate"`
	Salary           *decimal.Decimal `json:"salary"`
	CommissionRate   *decimal.Decimal `json:"commission_rate"`
	EmploymentStatus *string          `json:"employment_status"`
}

// EmployeeResponse proyección de un empleado.
type EmployeeResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	BranchID         string          `json:"branch_id"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Position         string          `json:"position,omitempty"`
	PayType          string          `json:"pay_type"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	Salary           decimal.Decimal `json:"salary"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	EmploymentStatus string          `json:"employment_status"`
	HireDate         *time.Time      `json:"hire_date,omitempty"`
	PhotoURL         string          `json:"photo_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// EmployeeListResponse listado paginado de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// EmployeeDocumentResponse documento subido de un empleado.
type EmployeeDocumentResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}
