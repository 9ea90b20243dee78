package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/SellerOps-api/internal/application/admin"
	appanalytics "github.com/jhoicas/SellerOps-api/internal/application/analytics"
	"github.com/jhoicas/SellerOps-api/internal/application/system"
	"github.com/jhoicas/SellerOps-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	SaleUC        *usecase.SaleUseCase
	SettingsUC    *usecase.SettingsUseCase
	AIUC          *usecase.AIUseCase
	AnalyticsUC   *appanalytics.AnalyticsUseCase
	InvitationUC  *admin.InvitationUseCase
	ProfileUC     *admin.ProfileUseCase
	MaintenanceUC *system.MaintenanceUseCase

	Auth               AuthConfig
	MigrationTokenHash string
	AppName            string
}

// Router registra las rutas de la API. Las rutas públicas van antes del grupo protegido:
// Fiber ejecuta los handlers en orden de registro.
func Router(app *fiber.App, deps RouterDeps) {
	systemHandler := NewSystemHandler(deps.MaintenanceUC, deps.AppName)
	app.Get("/health", systemHandler.Health)

	api := app.Group("/api")

	// Público
	api.Post("/keep-alive", systemHandler.KeepAlive)
	api.Post("/admin/migrations/run", RequireMigrationToken(deps.MigrationTokenHash), systemHandler.RunMigrations)

	invitationHandler := NewInvitationHandler(deps.InvitationUC)
	api.Post("/invitations/validate", invitationHandler.Validate)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Auth))

	protected.Post("/invitations/use", invitationHandler.Use)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Discontinue)
	products.Post("/:id/restock", productHandler.Restock)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Record)
	sales.Get("/", saleHandler.List)
	sales.Post("/:id/cancel", saleHandler.Cancel)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", settingsHandler.Update)

	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/profit", analyticsHandler.GetProfit)
	analyticsGroup.Get("/report", analyticsHandler.GetReport)
	analyticsGroup.Get("/report.pdf", analyticsHandler.GetReportPDF)
	analyticsGroup.Get("/trends", analyticsHandler.GetTrends)
	analyticsGroup.Get("/inventory-health", analyticsHandler.GetInventoryHealth)
	analyticsGroup.Get("/reorder", analyticsHandler.GetReorder)
	analyticsGroup.Get("/dashboard", analyticsHandler.GetDashboard)

	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/suggestion", aiHandler.Suggest)
	ai.Post("/worst-product-plan", aiHandler.WorstProductPlan)
	ai.Get("/last/:type", aiHandler.Last)
	ai.Get("/recommendations", aiHandler.List)
	ai.Post("/recommendations/:id/apply", aiHandler.MarkApplied)

	// Administración (perfil con is_admin)
	adminGroup := protected.Group("/admin", RequireAdmin(deps.ProfileUC))
	adminHandler := NewAdminHandler(deps.ProfileUC, deps.InvitationUC)
	adminGroup.Get("/profiles", adminHandler.ListProfiles)
	adminGroup.Get("/invitations", adminHandler.ListInvitations)
	adminGroup.Post("/invitations", adminHandler.CreateInvitation)
}
