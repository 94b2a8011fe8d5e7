package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago de un empleado. En almacenamiento los tres montos conviven;
// PayType indica cuál rige la nómina.
const (
	PayTypeHourly     = "hourly"
	PayTypeSalary     = "salary"
	PayTypeCommission = "commission"
)

// Estados de empleo.
const (
	EmploymentActive     = "active"
	EmploymentInactive   = "inactive"
	EmploymentTerminated = "terminated"
)

// Employee representa un técnico o empleado administrativo de una sucursal.
type Employee struct {
	ID        string
	CompanyID string
	BranchID  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string // technician, office, manager...

	PayType        string          // ver constantes PayType*
	HourlyRate     decimal.Decimal // USD por hora
	Salary         decimal.Decimal // USD anual
	CommissionRate decimal.Decimal // fracción sobre ventas, ej. 0.10

	EmploymentStatus string // ver constantes Employment*
	HireDate         *time.Time
	PhotoFile        string // nombre de archivo en el almacén de uploads; vacío = sin foto

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre para mostrar.
func (e *Employee) FullName() string {
	if e.FirstName == "" {
		return e.LastName
	}
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// EmployeeDocument representa un documento subido de un empleado (licencias,
// certificaciones de aplicador, contratos).
type EmployeeDocument struct {
	ID         string
	EmployeeID string
	Name       string // nombre lógico: "Licencia aplicador 2025"
	FileName   string // nombre de archivo en el almacén de uploads
	UploadedAt time.Time
}
