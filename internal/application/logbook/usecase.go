package logbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/usecase"
	"github.com/azex/pestops-api/internal/domain"
	"github.com/azex/pestops-api/internal/domain/entity"
	"github.com/azex/pestops-api/internal/domain/repository"
)

// UseCase casos de uso de la bitácora de incidentes. El alta es de
// autoservicio (sin autenticación); la consulta requiere sesión y se limita
// a la empresa del solicitante.
type UseCase struct {
	repo       repository.LogbookRepository
	files      usecase.FileStore
	branchRepo repository.BranchRepository
	userRepo   repository.UserRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.LogbookRepository, files usecase.FileStore, branchRepo repository.BranchRepository, userRepo repository.UserRepository) *UseCase {
	return &UseCase{repo: repo, files: files, branchRepo: branchRepo, userRepo: userRepo}
}

// Create registra un reporte de incidente. Requiere branch_id o customer_id y
// un asunto; la foto es opcional (photoName vacío = sin foto).
func (uc *UseCase) Create(in dto.CreateLogbookRequest, photoName string, photoData []byte) (*dto.LogbookResponse, error) {
	if in.BranchID == "" && in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Subject == "" {
		return nil, domain.ErrInvalidInput
	}
	report := &entity.LogbookReport{
		ID:           uuid.New().String(),
		BranchID:     in.BranchID,
		CustomerID:   in.CustomerID,
		Subject:      in.Subject,
		Description:  in.Description,
		ReporterName: in.ReporterName,
		CreatedAt:    time.Now(),
	}
	if photoName != "" && len(photoData) > 0 {
		stored, err := uc.files.Save(uc.partition(report), photoName, photoData)
		if err != nil {
			return nil, err
		}
		report.PhotoFile = stored
	}
	if err := uc.repo.Create(report); err != nil {
		// Insert fallido: se limpia la foto para no dejar archivos huérfanos.
		if report.PhotoFile != "" {
			_ = uc.files.Remove(uc.partition(report), report.PhotoFile)
		}
		return nil, err
	}
	return uc.toResponse(report), nil
}

// GetByID obtiene un reporte. ErrNotFound si no existe o si su sucursal o
// cliente pertenece a otra empresa.
func (uc *UseCase) GetByID(companyID, id string) (*dto.LogbookResponse, error) {
	report, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrNotFound
	}
	visible, err := uc.visible(companyID, report)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(report), nil
}

// ListByBranch lista reportes de una sucursal, más recientes primero. La
// sucursal debe pertenecer a la empresa del solicitante.
func (uc *UseCase) ListByBranch(companyID, branchID string, limit, offset int) (*dto.LogbookListResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LogbookResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *uc.toResponse(r))
	}
	return &dto.LogbookListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// visible verifica que la sucursal o el cliente del reporte pertenezca a la
// empresa del solicitante.
func (uc *UseCase) visible(companyID string, r *entity.LogbookReport) (bool, error) {
	if r.BranchID != "" {
		branch, err := uc.branchRepo.GetByID(r.BranchID)
		if err != nil {
			return false, err
		}
		return branch != nil && branch.CompanyID == companyID, nil
	}
	customer, err := uc.userRepo.GetByID(r.CustomerID)
	if err != nil {
		return false, err
	}
	return customer != nil && customer.CompanyID == companyID, nil
}

// partition elige la carpeta de uploads: la sucursal si se conoce, si no el
// cliente reportante.
func (uc *UseCase) partition(r *entity.LogbookReport) string {
	if r.BranchID != "" {
		return r.BranchID
	}
	return r.CustomerID
}

func (uc *UseCase) toResponse(r *entity.LogbookReport) *dto.LogbookResponse {
	if r == nil {
		return nil
	}
	photoURL := ""
	if r.PhotoFile != "" {
		photoURL = uc.files.URL(uc.partition(r), r.PhotoFile)
	}
	return &dto.LogbookResponse{
		ID:           r.ID,
		BranchID:     r.BranchID,
		CustomerID:   r.CustomerID,
		Subject:      r.Subject,
		Description:  r.Description,
		ReporterName: r.ReporterName,
		PhotoURL:     photoURL,
		CreatedAt:    r.CreatedAt,
	}
}
