package dto

import "time"

// CreateLogbookRequest campos de formulario multipart del reporte de incidente.
// branch_id o customer_id es obligatorio; la foto llega como archivo "photo".
type CreateLogbookRequest struct {
	BranchID     string `form:"branch_id"`
	CustomerID   string `form:"customer_id"`
	Subject      string `form:"subject"`
	Description  string `form:"description"`
	ReporterName string `form:"reporter_name"`
}

// LogbookResponse proyección de un reporte de incidente.
type LogbookResponse struct {
	ID           string    `json:"id"`
	BranchID     string    `json:"branch_id,omitempty"`
	CustomerID   string    `json:"customer_id,omitempty"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description,omitempty"`
	ReporterName string    `json:"reporter_name,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// LogbookListResponse listado paginado de reportes.
type LogbookListResponse struct {
	Items []LogbookResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
