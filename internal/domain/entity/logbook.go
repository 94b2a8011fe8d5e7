package entity

import "time"

// LogbookReport representa un reporte de incidente de plagas, levantado por un
// inquilino o cliente sin autenticación (autoservicio). Lleva la sucursal o el
// cliente al que pertenece y opcionalmente una foto subida.
type LogbookReport struct {
	ID           string
	BranchID     string // requerido si CustomerID está vacío
	CustomerID   string // requerido si BranchID está vacío
	Subject      string
	Description  string
	ReporterName string
	PhotoFile    string // nombre de archivo en el almacén de uploads; vacío = sin foto
	CreatedAt    time.Time
}
