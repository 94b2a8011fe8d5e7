package entity

import "time"

// Estados de un trabajo agendado.
const (
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// Job representa una cita de servicio: vincula un cliente, un técnico y una
// sucursal dentro de un intervalo de tiempo.
type Job struct {
	ID           string
	CompanyID    string
	BranchID     string
	CustomerID   string // users.id con role=customer
	TechnicianID string // employees.id
	Title        string // ej. "Servicio general de plagas"
	Notes        string
	StartsAt     time.Time
	EndsAt       time.Time
	Status       string // ver constantes JobStatus*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
