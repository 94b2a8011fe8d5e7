package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azex/pestops-api/internal/application/auth"
	"github.com/azex/pestops-api/internal/application/billing"
	"github.com/azex/pestops-api/internal/application/inventory"
	"github.com/azex/pestops-api/internal/application/logbook"
	"github.com/azex/pestops-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	BranchUC   *usecase.BranchUseCase
	CustomerUC *usecase.CustomerUseCase
	EmployeeUC *usecase.EmployeeUseCase
	JobUC      *usecase.JobUseCase
	ProductUC  *usecase.ProductUseCase
	StockUC    *inventory.StockUseCase
	InvoiceUC  *billing.InvoiceUseCase
	LogbookUC  *logbook.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Logbook: el alta es pública (autoservicio de inquilinos, con foto opcional)
	logbookHandler := NewLogbookHandler(deps.LogbookUC)
	api.Post("/logbook", logbookHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (superadmin; get permite la empresa propia)
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", RequirePermission("companies", "manage"), companyHandler.Create)
	companies.Get("/", RequirePermission("companies", "manage"), companyHandler.List)
	companies.Get("/:id", RequirePermission("companies", "read"), companyHandler.GetByID)

	// Branches
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", RequirePermission("branches", "manage"), branchHandler.Create)
	branches.Get("/", RequirePermission("branches", "read"), branchHandler.List)
	branches.Get("/:id", RequirePermission("branches", "read"), branchHandler.GetByID)
	branches.Put("/:id", RequirePermission("branches", "manage"), branchHandler.Update)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", RequirePermission("customers", "manage"), customerHandler.Create)
	customers.Get("/", RequirePermission("customers", "read"), customerHandler.List)
	customers.Get("/:id", RequirePermission("customers", "read"), customerHandler.GetByID)
	customers.Put("/:id", RequirePermission("customers", "manage"), customerHandler.Update)
	customers.Delete("/:id", RequirePermission("customers", "manage"), customerHandler.Delete)

	// Employees (con foto y documentos)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", RequirePermission("employees", "manage"), employeeHandler.Create)
	employees.Get("/", RequirePermission("employees", "read"), employeeHandler.List)
	employees.Get("/:id", RequirePermission("employees", "read"), employeeHandler.GetByID)
	employees.Put("/:id", RequirePermission("employees", "manage"), employeeHandler.Update)
	employees.Delete("/:id", RequirePermission("employees", "manage"), employeeHandler.Delete)
	employees.Put("/:id/photo", RequirePermission("employees", "manage"), employeeHandler.UploadPhoto)
	employees.Post("/:id/documents", RequirePermission("employees", "manage"), employeeHandler.AddDocument)
	employees.Get("/:id/documents", RequirePermission("employees", "read"), employeeHandler.ListDocuments)

	// Jobs (los técnicos pueden actualizar estado/notas de sus trabajos)
	jobs := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobs.Post("/", RequirePermission("jobs", "manage"), jobHandler.Create)
	jobs.Get("/", RequirePermission("jobs", "read"), jobHandler.List)
	jobs.Get("/:id", RequirePermission("jobs", "read"), jobHandler.GetByID)
	jobs.Put("/:id", RequirePermission("jobs", "update"), jobHandler.Update)
	jobs.Delete("/:id", RequirePermission("jobs", "manage"), jobHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission("products", "manage"), productHandler.Create)
	products.Get("/", RequirePermission("products", "read"), productHandler.List)
	products.Get("/:id", RequirePermission("products", "read"), productHandler.GetByID)
	products.Put("/:id", RequirePermission("products", "manage"), productHandler.Update)
	products.Delete("/:id", RequirePermission("products", "manage"), productHandler.Delete)

	// Stock (ajustes firmados; los técnicos registran consumo en campo)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Post("/adjust", RequirePermission("stock", "adjust"), stockHandler.Adjust)
	stock.Put("/reorder-level", RequirePermission("stock", "manage"), stockHandler.SetReorderLevel)
	stock.Get("/", RequirePermission("stock", "read"), stockHandler.Get)
	stock.Get("/branch/:branch_id", RequirePermission("stock", "read"), stockHandler.ListByBranch)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", RequirePermission("invoices", "manage"), invoiceHandler.Create)
	invoices.Get("/", RequirePermission("invoices", "read"), invoiceHandler.List)
	invoices.Get("/:id", RequirePermission("invoices", "read"), invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", RequirePermission("invoices", "read"), invoiceHandler.PDF)
	invoices.Post("/:id/email", RequirePermission("invoices", "manage"), invoiceHandler.Email)
	invoices.Post("/:id/payments", RequirePermission("invoices", "manage"), invoiceHandler.RecordPayment)
	invoices.Post("/:id/void", RequirePermission("invoices", "manage"), invoiceHandler.Void)

	// Logbook (consulta protegida)
	logbookGroup := protected.Group("/logbook")
	logbookGroup.Get("/branch/:branch_id", RequirePermission("logbook", "read"), logbookHandler.ListByBranch)
	logbookGroup.Get("/:id", RequirePermission("logbook", "read"), logbookHandler.GetByID)
}
