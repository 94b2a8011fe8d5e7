package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azex/pestops-api/internal/application/dto"
	"github.com/azex/pestops-api/internal/domain/entity"
)

// permission identifica una operación protegida como recurso + acción.
type permission struct {
	Resource string
	Action   string
}

// policy tabla declarativa de autorización: qué roles pueden ejecutar cada
// operación. Superadmin pasa siempre; agregar una ruta nueva es agregar una
// fila aquí.
var policy = map[permission][]string{
	{"companies", "manage"}: {},
	{"companies", "read"}:   {entity.RoleCompanyAdmin},

	{"branches", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"branches", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"customers", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"customers", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"employees", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"employees", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"jobs", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"jobs", "update"}: {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},
	{"jobs", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"products", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"products", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"stock", "adjust"}: {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},
	{"stock", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"stock", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},

	{"invoices", "manage"}: {entity.RoleCompanyAdmin, entity.RoleAdmin},
	{"invoices", "read"}:   {entity.RoleCompanyAdmin, entity.RoleAdmin},

	{"logbook", "read"}: {entity.RoleCompanyAdmin, entity.RoleAdmin, entity.RoleTechnician},
}

// RequirePermission devuelve un middleware que verifica la tabla de políticas
// contra el rol del token. Debe usarse DESPUÉS de AuthMiddleware.
// Superadmin siempre pasa.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no encontrado en el token",
			})
		}
		if role == entity.RoleSuperadmin {
			return c.Next()
		}
		allowed, ok := policy[permission{Resource: resource, Action: action}]
		if ok {
			for _, r := range allowed {
				if r == role {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol '" + role + "' no puede ejecutar " + resource + ":" + action,
		})
	}
}
