package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/azex/pestops-api/internal/application/auth"
	"github.com/azex/pestops-api/internal/application/billing"
	"github.com/azex/pestops-api/internal/application/inventory"
	"github.com/azex/pestops-api/internal/application/logbook"
	"github.com/azex/pestops-api/internal/application/usecase"
	inframail "github.com/azex/pestops-api/internal/infrastructure/mail"
	infrapdf "github.com/azex/pestops-api/internal/infrastructure/pdf"
	"github.com/azex/pestops-api/internal/infrastructure/postgres"
	"github.com/azex/pestops-api/internal/infrastructure/storage"
	httpRouter "github.com/azex/pestops-api/internal/interfaces/http"
	"github.com/azex/pestops-api/pkg/config"
	"github.com/azex/pestops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	fileStore, err := storage.NewLocalFileStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de uploads")
	}

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	logbookRepo := postgres.NewLogbookRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := inframail.NewGomailSender(cfg.Mail)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, txRunner)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	customerUC := usecase.NewCustomerUseCase(userRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, fileStore)
	jobUC := usecase.NewJobUseCase(jobRepo, userRepo, employeeRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	stockUC := inventory.NewStockUseCase(txRunner, stockRepo, productRepo, branchRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, userRepo, companyRepo, pdfGenerator, mailer)
	logbookUC := logbook.NewUseCase(logbookRepo, fileStore, branchRepo, userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024, // fotos y documentos subidos
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PestOps API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Archivos subidos (fotos de empleados, documentos, fotos de bitácora)
	app.Static("/uploads", fileStore.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CompanyUC:  companyUC,
		BranchUC:   branchUC,
		CustomerUC: customerUC,
		EmployeeUC: employeeUC,
		JobUC:      jobUC,
		ProductUC:  productUC,
		StockUC:    stockUC,
		InvoiceUC:  invoiceUC,
		LogbookUC:  logbookUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
