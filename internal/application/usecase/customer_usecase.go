package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes. Un cliente es una fila de
// users con role=customer: la misma cuenta lleva contacto de servicio y
// bloque de facturación.
type CustomerUseCase struct {
	userRepo repository.UserRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(userRepo repository.UserRepository) *CustomerUseCase {
	return &CustomerUseCase{userRepo: userRepo}
}

// Create crea un cliente con contraseña temporal hasheada.
// Devuelve ErrEmailAlreadyExists si el email ya está tomado.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Email == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	// Contraseña temporal aleatoria; el cliente la restablece desde el portal.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		BranchID:     in.BranchID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		Status:       "active",
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone1:       in.Phone1,
		Phone2:       in.Phone2,
		CompanyName:  in.CompanyName,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Zip:          in.Zip,
		BillName:     in.BillName,
		BillEmail:    in.BillEmail,
		BillPhone:    in.BillPhone,
		BillAddress:  in.BillAddress,
		BillCity:     in.BillCity,
		BillState:    in.BillState,
		BillZip:      in.BillZip,
		MultiUnit:    in.MultiUnit,
		Recurrence:   in.Recurrence,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toCustomerResponse(user), nil
}

// GetByID obtiene un cliente; nil si no existe, no es cliente o es de otra empresa.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	user, err := uc.findCustomer(companyID, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toCustomerResponse(user), nil
}

// List lista clientes de la empresa; branchID vacío = todas las sucursales.
func (uc *CustomerUseCase) List(companyID, branchID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.userRepo.ListByRole(companyID, entity.RoleCustomer, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toCustomerResponse(u))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica la actualización parcial por allow-list: email, rol y empresa
// no se modifican por esta vía.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	user, err := uc.findCustomer(companyID, id)
	if err != nil || user == nil {
		return nil, err
	}
	if in.BranchID != nil {
		user.BranchID = *in.BranchID
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Phone1 != nil {
		user.Phone1 = *in.Phone1
	}
	if in.Phone2 != nil {
		user.Phone2 = *in.Phone2
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.State != nil {
		user.State = *in.State
	}
	if in.Zip != nil {
		user.Zip = *in.Zip
	}
	if in.BillName != nil {
		user.BillName = *in.BillName
	}
	if in.BillEmail != nil {
		user.BillEmail = *in.BillEmail
	}
	if in.BillPhone != nil {
		user.BillPhone = *in.BillPhone
	}
	if in.BillAddress != nil {
		user.BillAddress = *in.BillAddress
	}
	if in.BillCity != nil {
		user.BillCity = *in.BillCity
	}
	if in.BillState != nil {
		user.BillState = *in.BillState
	}
	if in.BillZip != nil {
		user.BillZip = *in.BillZip
	}
	if in.MultiUnit != nil {
		user.MultiUnit = *in.MultiUnit
	}
	if in.Recurrence != nil {
		user.Recurrence = *in.Recurrence
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toCustomerResponse(user), nil
}

// Delete elimina un cliente (hard delete). ErrNotFound si no existe, no es
// cliente o pertenece a otra empresa.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	user, err := uc.findCustomer(companyID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.userRepo.Delete(id)
}

// findCustomer carga la cuenta y verifica rol y tenant. nil = no visible.
func (uc *CustomerUseCase) findCustomer(companyID, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleCustomer || user.CompanyID != companyID {
		return nil, nil
	}
	return user, nil
}

func toCustomerResponse(u *entity.User) *dto.CustomerResponse {
	if u == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		BranchID:    u.BranchID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone1:      u.Phone1,
		Phone2:      u.Phone2,
		CompanyName: u.CompanyName,
		Address:     u.Address,
		City:        u.City,
		State:       u.State,
		Zip:         u.Zip,
		BillName:    u.BillName,
		BillEmail:   u.BillEmail,
		BillPhone:   u.BillPhone,
		BillAddress: u.BillAddress,
		BillCity:    u.BillCity,
		BillState:   u.BillState,
		BillZip:     u.BillZip,
		MultiUnit:   u.MultiUnit,
		Recurrence:  u.Recurrence,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
