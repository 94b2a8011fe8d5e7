package dto

import "time"

// CreateCustomerRequest alta de cliente por un administrador.
// La cuenta se crea con role=customer y una contraseña temporal hasheada.
type CreateCustomerRequest struct {
	Email       string `json:"email"`
	BranchID    string `json:"branch_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone1      string `json:"phone1"`
	Phone2      string `json:"phone2"`
	CompanyName string `json:"company"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	BillName    string `json:"bill_name"`
	BillEmail   string `json:"bill_email"`
	BillPhone   string `json:"bill_phone"`
	BillAddress string `json:"bill_address"`
	BillCity    string `json:"bill_city"`
	BillState   string `json:"bill_state"`
	BillZip     string `json:"bill_zip"`
	MultiUnit   bool   `json:"multi_unit"`
	Recurrence  string `json:"recurrence"`
}

// UpdateCustomerRequest actualización parcial: solo los campos presentes se aplican
// (allow-list; email, rol y tenant no se tocan por esta vía).
type UpdateCustomerRequest struct {
	BranchID    *string `json:"branch_id"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone1      *string `json:"phone1"`
	Phone2      *string `json:"phone2"`
	CompanyName *string `json:"company"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
	BillName    *string `json:"bill_name"`
	BillEmail   *string `json:"bill_email"`
	BillPhone   *string `json:"bill_phone"`
	BillAddress *string `json:"bill_address"`
	BillCity    *string `json:"bill_city"`
	BillState   *string `json:"bill_state"`
	BillZip     *string `json:"bill_zip"`
	MultiUnit   *bool   `json:"multi_unit"`
	Recurrence  *string `json:"recurrence"`
	Status      *string `json:"status"`
}

// CustomerResponse proyección de un cliente.
type CustomerResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	BranchID    string    `json:"branch_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone1      string    `json:"phone1,omitempty"`
	Phone2      string    `json:"phone2,omitempty"`
	CompanyName string    `json:"company,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Zip         string    `json:"zip,omitempty"`
	BillName    string    `json:"bill_name,omitempty"`
	BillEmail   string    `json:"bill_email,omitempty"`
	BillPhone   string    `json:"bill_phone,omitempty"`
	BillAddress string    `json:"bill_address,omitempty"`
	BillCity    string    `json:"bill_city,omitempty"`
	BillState   string    `json:"bill_state,omitempty"`
	BillZip     string    `json:"bill_zip,omitempty"`
	MultiUnit   bool      `json:"multi_unit"`
	Recurrence  string    `json:"recurrence,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
