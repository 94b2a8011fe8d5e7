package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// FileStore puerto de almacenamiento de archivos subidos, particionado por
// sucursal. Devuelve el nombre de archivo almacenado.
type FileStore interface {
	Save(branchID, originalName string, data []byte) (storedName string, err error)
	URL(branchID, storedName string) string
	// Remove borra un archivo almacenado (limpieza cuando el insert falla).
	Remove(branchID, storedName string) error
}

// EmployeeUseCase casos de uso CRUD para empleados/técnicos, con foto y
// documentos subidos.
type EmployeeUseCase struct {
	repo  repository.EmployeeRepository
	files FileStore
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, files FileStore) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, files: files}
}

// Create crea un empleado. Los tres montos de pago conviven en almacenamiento;
// PayType indica cuál rige.
func (uc *EmployeeUseCase) Create(companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.FirstName == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	payType := in.PayType
	if payType == "" {
		payType = entity.PayTypeHourly
	}
	switch payType {
	case entity.PayTypeHourly, entity.PayTypeSalary, entity.PayTypeCommission:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	emp := &entity.Employee{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		BranchID:         in.BranchID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Position:         in.Position,
		PayType:          payType,
		HourlyRate:       derefDecimal(in.HourlyRate),
		Salary:           derefDecimal(in.Salary),
		CommissionRate:   derefDecimal(in.CommissionRate),
		EmploymentStatus: entity.EmploymentActive,
		HireDate:         in.HireDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(emp); err != nil {
		return nil, err
	}
	return uc.toResponse(emp), nil
}

// GetByID obtiene un empleado; nil si no existe o es de otra empresa.
func (uc *EmployeeUseCase) GetByID(companyID, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil || emp == nil {
		return nil, err
	}
	return uc.toResponse(emp), nil
}

// List lista empleados; branchID vacío = todas las sucursales.
func (uc *EmployeeUseCase) List(companyID, branchID string, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *uc.toResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update aplica actualización parcial.
func (uc *EmployeeUseCase) Update(companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil || emp == nil {
		return nil, err
	}
	if in.BranchID != nil {
		emp.BranchID = *in.BranchID
	}
	if in.FirstName != nil {
		emp.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		emp.LastName = *in.LastName
	}
	if in.Email != nil {
		emp.Email = *in.Email
	}
	if in.Phone != nil {
		emp.Phone = *in.Phone
	}
	if in.Position != nil {
		emp.Position = *in.Position
	}
	if in.PayType != nil {
		switch *in.PayType {
		case entity.PayTypeHourly, entity.PayTypeSalary, entity.PayTypeCommission:
			emp.PayType = *in.PayType
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.HourlyRate != nil {
		emp.HourlyRate = *in.HourlyRate
	}
	if in.Salary != nil {
		emp.Salary = *in.Salary
	}
	if in.CommissionRate != nil {
		emp.CommissionRate = *in.CommissionRate
	}
	if in.EmploymentStatus != nil {
		emp.EmploymentStatus = *in.EmploymentStatus
	}
	emp.UpdatedAt = time.Now()
	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	return uc.toResponse(emp), nil
}

// Delete elimina un empleado (hard delete). ErrNotFound si no es visible.
func (uc *EmployeeUseCase) Delete(companyID, id string) error {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// SavePhoto guarda la foto en la partición de la sucursal del empleado y
// actualiza la referencia.
func (uc *EmployeeUseCase) SavePhoto(companyID, id, originalName string, data []byte) (*dto.EmployeeResponse, error) {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	stored, err := uc.files.Save(emp.BranchID, originalName, data)
	if err != nil {
		return nil, err
	}
	emp.PhotoFile = stored
	emp.UpdatedAt = time.Now()
	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	return uc.toResponse(emp), nil
}

// AddDocument guarda un documento subido (licencias, certificaciones) y lo
// registra contra el empleado.
func (uc *EmployeeUseCase) AddDocument(companyID, id, name, originalName string, data []byte) (*dto.EmployeeDocumentResponse, error) {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	if name == "" {
		name = originalName
	}
	stored, err := uc.files.Save(emp.BranchID, originalName, data)
	if err != nil {
		return nil, err
	}
	doc := &entity.EmployeeDocument{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		Name:       name,
		FileName:   stored,
		UploadedAt: time.Now(),
	}
	if err := uc.repo.AddDocument(doc); err != nil {
		return nil, err
	}
	return &dto.EmployeeDocumentResponse{
		ID:         doc.ID,
		EmployeeID: doc.EmployeeID,
		Name:       doc.Name,
		FileURL:    uc.files.URL(emp.BranchID, doc.FileName),
		UploadedAt: doc.UploadedAt,
	}, nil
}

// ListDocuments lista documentos de un empleado.
func (uc *EmployeeUseCase) ListDocuments(companyID, id string) ([]dto.EmployeeDocumentResponse, error) {
	emp, err := uc.findEmployee(companyID, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	docs, err := uc.repo.ListDocuments(id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.EmployeeDocumentResponse{
			ID:         d.ID,
			EmployeeID: d.EmployeeID,
			Name:       d.Name,
			FileURL:    uc.files.URL(emp.BranchID, d.FileName),
			UploadedAt: d.UploadedAt,
		})
	}
	return out, nil
}

func (uc *EmployeeUseCase) findEmployee(companyID, id string) (*entity.Employee, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if emp == nil || emp.CompanyID != companyID {
		return nil, nil
	}
	return emp, nil
}

func (uc *EmployeeUseCase) toResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	photoURL := ""
	if e.PhotoFile != "" {
		photoURL = uc.files.URL(e.BranchID, e.PhotoFile)
	}
	return &dto.EmployeeResponse{
		ID:               e.ID,
		CompanyID:        e.CompanyID,
		BranchID:         e.BranchID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		Phone:            e.Phone,
		Position:         e.Position,
		PayType:          e.PayType,
		HourlyRate:       e.HourlyRate,
		Salary:           e.Salary,
		CommissionRate:   e.CommissionRate,
		EmploymentStatus: e.EmploymentStatus,
		HireDate:         e.HireDate,
		PhotoURL:         photoURL,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
