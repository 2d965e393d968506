package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/vendordocs-api/internal/application/analytics"
	"github.com/jhoicas/vendordocs-api/internal/application/auth"
	"github.com/jhoicas/vendordocs-api/internal/application/documents"
	"github.com/jhoicas/vendordocs-api/internal/application/principal"
	"github.com/jhoicas/vendordocs-api/internal/application/reports"
	"github.com/jhoicas/vendordocs-api/internal/application/usecase"
	"github.com/jhoicas/vendordocs-api/internal/domain/access"
	"github.com/jhoicas/vendordocs-api/internal/domain/repository"
	"github.com/jhoicas/vendordocs-api/internal/infrastructure/metrics"
	"github.com/jhoicas/vendordocs-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	AssignmentUC *usecase.AssignmentUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	DocumentsUC  *documents.UseCase
	ExportUC     *reports.ExportUseCase
	Principals   *principal.Loader
	Health       repository.HealthChecker
	Metrics      *metrics.Metrics
	Uploads      nethttp.FileSystem
	Logger       *logger.Logger
	ServiceName  string
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger, deps.Metrics))
	}

	app.Get("/health", NewHealthHandler(deps.ServiceName, deps.Health).Check)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{})))
	}
	// Archivos subidos: públicos en /uploads
	if deps.Uploads != nil {
		app.Use("/uploads", filesystem.New(filesystem.Config{Root: deps.Uploads}))
	}

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	subject := LoadSubject(deps.Principals)

	// guarded: filtro grueso por rol del token y luego carga del Subject desde el store
	guarded := func(a access.Action, h fiber.Handler) []fiber.Handler {
		return []fiber.Handler{RequireAction(a), subject, h}
	}

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)

	users := NewUserHandler(deps.UserUC)
	assignments := NewAssignmentHandler(deps.AssignmentUC)
	dashboards := NewDashboardHandler(deps.DashboardUC)
	docs := NewDocumentHandler(deps.DocumentsUC, deps.ExportUC)

	// Admin
	admin := api.Group("/admin", authn)
	admin.Get("/dashboard", guarded(access.ActionViewAdminDashboard, dashboards.Admin)...)
	admin.Post("/auditors", guarded(access.ActionCreateAuditor, users.CreateAuditor)...)
	admin.Post("/vendors", guarded(access.ActionCreateVendor, users.CreateVendor)...)
	admin.Get("/users", guarded(access.ActionListUsers, users.ListUsers)...)
	admin.Post("/assignments", guarded(access.ActionAssignVendor, assignments.Assign)...)

	// Auditor
	auditor := api.Group("/auditor", authn)
	auditor.Get("/dashboard", guarded(access.ActionViewAuditorDashboard, dashboards.Auditor)...)
	auditor.Get("/vendors", guarded(access.ActionListAssignedVendors, assignments.AssignedVendors)...)

	// Vendor
	vendor := api.Group("/vendor", authn)
	vendor.Get("/dashboard", guarded(access.ActionViewVendorDashboard, dashboards.Vendor)...)

	// Documents
	documentsGroup := api.Group("/documents", authn)
	documentsGroup.Get("/", guarded(access.ActionListDocuments, docs.List)...)
	documentsGroup.Get("/export", guarded(access.ActionExportDocuments, docs.Export)...)
	documentsGroup.Post("/upload", guarded(access.ActionUploadDocument, docs.Upload)...)
	documentsGroup.Put("/:id/status", guarded(access.ActionUpdateDocumentStatus, docs.UpdateStatus)...)
}
