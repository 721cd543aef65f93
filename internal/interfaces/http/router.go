package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/freelance-forge-api/internal/application/analytics"
	"github.com/jhoicas/freelance-forge-api/internal/application/auth"
	"github.com/jhoicas/freelance-forge-api/internal/application/billing"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
)

// Pinger verifica la conexión con el almacenamiento (pgxpool.Pool o memory.Store).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	Store        Pinger
	Metrics      *Metrics
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	TemplateUC   *usecase.InvoiceTemplateUseCase
	InvoiceUC    *billing.InvoiceUseCase
	PDFUC        *billing.PDFUseCase
	ExpenseUC    *usecase.ExpenseUseCase
	AIUC         *usecase.AIUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	CookieSecure bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := deps.Store.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.ServiceName})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	requireSession := AuthMiddleware(deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireSession, authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)
	authGroup.Patch("/profile", requireSession, authHandler.UpdateProfile)

	// Company
	company := api.Group("/company", requireSession)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Post("/", companyHandler.Create)
	company.Get("/", companyHandler.List)
	company.Get("/me", companyHandler.GetMine)
	company.Patch("/", companyHandler.Update)

	// Invoice templates
	templates := api.Group("/invoice-templates", requireSession)
	templateHandler := NewInvoiceTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)

	// Invoices
	invoices := api.Group("/invoices", requireSession)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Expenses
	expenses := api.Group("/expenses", requireSession)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/export", expenseHandler.Export)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// AI
	aiGroup := api.Group("/ai", requireSession)
	aiHandler := NewAIHandler(deps.AIUC)
	aiGroup.Post("/line-item-improve", aiHandler.ImproveLineItem)
	aiGroup.Get("/line-item-last", aiHandler.LastLineItem)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireSession, dashboardHandler.GetSummary)
}
