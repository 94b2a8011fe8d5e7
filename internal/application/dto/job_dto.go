package dto

import "time"

// CreateJobRequest alta de trabajo agendado.
type CreateJobRequest struct {
	BranchID     string    `json:"branch_id"`
	CustomerID   string    `json:"customer_id"`
	TechnicianID string    `json:"technician_id"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
}

// UpdateJobRequest actualización parcial de trabajo.
type UpdateJobRequest struct {
	TechnicianID *string    `json:"technician_id"`
	Title        *string    `json:"title"`
	Notes        *string    `json:"notes"`
	StartsAt     *time.Time `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at"`
	Status       *string    `json:"status"`
}

// JobResponse proyección de un trabajo.
type JobResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	BranchID     string    `json:"branch_id"`
	CustomerID   string    `json:"customer_id"`
	TechnicianID string    `json:"technician_id"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobListResponse listado paginado de trabajos.
type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
