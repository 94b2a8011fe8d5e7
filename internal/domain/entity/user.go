package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin   = "superadmin"
	RoleCompanyAdmin = "company_admin"
	RoleAdmin        = "admin"
	RoleTechnician   = "technician"
	RoleCustomer     = "customer"
)

// User representa una cuenta del sistema (pertenece a una Company y a una Branch).
// Los clientes son usuarios con role=customer: la misma fila lleva los datos
// de contacto del servicio y el bloque de facturación (bill-to).
type User struct {
	ID           string
	CompanyID    string
	BranchID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ver constantes Role*
	Status       string // active, inactive, suspended

	FirstName   string
	LastName    string
	Phone1      string
	Phone2      string
	CompanyName string // razón social del cliente, si aplica
	Address     string
	City        string
	State       string
	Zip         string

	// Bloque bill-to: a dónde se envía la factura. Puede diferir del contacto de servicio.
	BillName    string
	BillEmail   string
	BillPhone   string
	BillAddress string
	BillCity    string
	BillState   string
	BillZip     string

	MultiUnit  bool   // propiedad multi-unidad (apartamentos, plazas comerciales)
	Recurrence string // preferencia de repetición del servicio: monthly, bimonthly, quarterly... (informativo)

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre para mostrar; cae a razón social o email si no hay nombre.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.CompanyName != "":
		return u.CompanyName
	default:
		return u.Email
	}
}

// BillingEmail devuelve el email de facturación con fallback al email de la cuenta.
func (u *User) BillingEmail() string {
	if u.BillEmail != "" {
		return u.BillEmail
	}
	return u.Email
}
