package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/team-feedback/internal/application/analytics"
	"github.com/jhoicas/team-feedback/internal/application/auth"
	"github.com/jhoicas/team-feedback/internal/application/reports"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	MemberUC    *usecase.MemberUseCase
	FeedbackUC  *usecase.FeedbackUseCase
	ReportUC    *analytics.ReportUseCase
	ExportUC    *reports.ExportUseCase
	CSVRenderer reports.Renderer
	PDFRenderer reports.Renderer
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + principal vigente)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret, deps.AuthUC),
		PrincipalMiddleware(deps.AuthUC),
	)
	// admin y reviewer; los casos de uso aplican las mismas reglas.
	managers := RequireRole(string(entity.RoleAdmin), string(entity.RoleReviewer))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company", companyHandler.Current)

	// Members
	members := protected.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC)
	members.Get("/", memberHandler.List)
	members.Get("/:id", memberHandler.GetByID)
	members.Post("/", managers, memberHandler.Create)
	members.Patch("/:id", managers, memberHandler.Update)
	members.Delete("/:id", managers, memberHandler.Delete)

	// Feedback
	feedbacks := protected.Group("/feedbacks")
	feedbackHandler := NewFeedbackHandler(deps.FeedbackUC)
	feedbacks.Get("/", feedbackHandler.List)
	feedbacks.Post("/", managers, feedbackHandler.Submit)
	feedbacks.Patch("/:id/status", managers, feedbackHandler.ToggleStatus)

	// Reportes
	rep := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC, deps.CSVRenderer, deps.PDFRenderer)
	rep.Get("/dashboard", reportHandler.Dashboard)
	rep.Get("/feedbacks", reportHandler.Feedbacks)
	rep.Get("/feedbacks.csv", reportHandler.ExportCSV)
	rep.Get("/feedbacks.pdf", reportHandler.ExportPDF)
}
