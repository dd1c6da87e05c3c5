package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"rf-loans/internal/adapters/http/handlers"
	"rf-loans/internal/adapters/http/middleware"
	"rf-loans/internal/core/services"
	"rf-loans/internal/core/usecases"
	"rf-loans/internal/pkg/retry"
)

// Dependencies is everything the HTTP layer needs from the application
type Dependencies struct {
	Catalog     *usecases.Catalog
	Loans       *usecases.Loans
	Queries     *services.QueryService
	HealthCheck func() error
	JWTSecret   string
	AppMode     string
	Logger      *slog.Logger
	Retry       []retry.Option
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.AppMode, deps.HealthCheck)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Queries, logger)
	loanHandler := handlers.NewLoanHandler(deps.Loans, deps.Queries, logger, deps.Retry...)
	auditHandler := handlers.NewAuditHandler(deps.Queries, logger)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group, every route authenticated
	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.AuthMiddleware(deps.JWTSecret))

	setupEmployeeRoutes(apiV1.Group("/employees"), catalogHandler)
	setupRadioUnitRoutes(apiV1.Group("/radio-units"), catalogHandler)
	setupOperatorAccountRoutes(apiV1.Group("/operator-accounts"), catalogHandler)
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler)

	auditRoutes := apiV1.Group("/audit-log")
	auditRoutes.Use(middleware.AdminOnly())
	auditRoutes.Get("/", auditHandler.ListAudit)
}

// setupEmployeeRoutes configures employee routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	router.Get("/", handler.ListEmployees)
	router.Get("/:document", handler.GetEmployee)

	// Admin only
	router.Post("/", middleware.AdminOnly(), handler.CreateEmployee)
	router.Patch("/:document", middleware.AdminOnly(), handler.UpdateEmployee)
	router.Delete("/:document", middleware.AdminOnly(), handler.DeleteEmployee)
}

// setupRadioUnitRoutes configures radio unit routes
func setupRadioUnitRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	router.Get("/", handler.ListRadioUnits)
	router.Get("/:code", handler.GetRadioUnit)

	// Admin only
	router.Post("/", middleware.AdminOnly(), handler.CreateRadioUnit)
	router.Patch("/:code", middleware.AdminOnly(), handler.UpdateRadioUnit)
	router.Delete("/:code", middleware.AdminOnly(), handler.DeleteRadioUnit)
}

// setupOperatorAccountRoutes configures operator account routes
func setupOperatorAccountRoutes(router fiber.Router, handler *handlers.CatalogHandler) {
	router.Get("/", handler.ListOperatorAccounts)
	router.Get("/:username", handler.GetOperatorAccount)

	// Admin only
	router.Post("/", middleware.AdminOnly(), handler.CreateOperatorAccount)
	router.Patch("/:username", middleware.AdminOnly(), handler.UpdateOperatorAccount)
	router.Delete("/:username", middleware.AdminOnly(), handler.DeleteOperatorAccount)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.ListLoans)
	router.Post("/", handler.AssignLoan)
	router.Post("/return", handler.ReturnLoan)
}
