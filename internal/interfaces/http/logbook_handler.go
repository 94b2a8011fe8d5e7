package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/application/logbook"
)

// LogbookHandler maneja los reportes de incidentes. El alta es pública
// (autoservicio de inquilinos); la consulta va detrás del middleware de auth.
type LogbookHandler struct {
	uc *logbook.UseCase
}

// NewLogbookHandler construye el handler.
func NewLogbookHandler(uc *logbook.UseCase) *LogbookHandler {
	return &LogbookHandler{uc: uc}
}

// Create godoc
// @Summary      Reportar incidente (público, multipart con foto opcional)
// @Tags         logbook
// @Accept       multipart/form-data
// @Produce      json
// @Param        branch_id      formData  string  false  "ID de la sucursal"
// @Param        customer_id    formData  string  false  "ID del cliente"
// @Param        subject        formData  string  true   "Asunto"
// @Param        description    formData  string  false  "Descripción"
// @Param        reporter_name  formData  string  false  "Nombre del reportante"
// @Param        photo          formData  file    false  "Foto"
// @Success      201  {object}  dto.LogbookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/logbook [post]
func (h *LogbookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLogbookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
	}
	var photoName string
	var photoData []byte
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		data, err := readMultipartFile(fh)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer la foto"})
		}
		photoName = fh.Filename
		photoData = data
	}
	out, err := h.uc.Create(in, photoName, photoData)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener reporte por ID
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del reporte"
// @Success      200  {object}  dto.LogbookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/logbook/{id} [get]
func (h *LogbookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ListByBranch godoc
// @Summary      Listar reportes de una sucursal
// @Tags         logbook
// @Security     Bearer
// @Produce      json
// @Param        branch_id  path  string  true  "ID de la sucursal"
// @Success      200        {object}  dto.LogbookListResponse
// @Router       /api/logbook/branch/{branch_id} [get]
func (h *LogbookHandler) ListByBranch(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.DefaultPage()
	out, err := h.uc.ListByBranch(GetCompanyID(c), c.Params("branch_id"), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
