package entity

import "time"

// Company representa la empresa de control de plagas (tenant del sistema).
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxRate   string // tasa de impuesto por defecto para facturas, ej. "0.081"
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Branch representa una sucursal de la empresa. Clientes, empleados, trabajos
// y stock llevan exactamente un branch_id.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
