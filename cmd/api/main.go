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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/freelance-forge-api/docs" // registra el documento OpenAPI en swag
	appanalytics "github.com/jhoicas/freelance-forge-api/internal/application/analytics"
	"github.com/jhoicas/freelance-forge-api/internal/application/auth"
	"github.com/jhoicas/freelance-forge-api/internal/application/billing"
	"github.com/jhoicas/freelance-forge-api/internal/application/usecase"
	"github.com/jhoicas/freelance-forge-api/internal/domain/repository"
	infraai "github.com/jhoicas/freelance-forge-api/internal/infrastructure/ai"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/freelance-forge-api/internal/infrastructure/pdf"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/postgres"
	"github.com/jhoicas/freelance-forge-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/freelance-forge-api/internal/interfaces/http"
	"github.com/jhoicas/freelance-forge-api/pkg/config"
	"github.com/jhoicas/freelance-forge-api/pkg/logger"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	pinger    httpRouter.Pinger
	invoiceTx billing.InvoiceTxRunner
	companyTx usecase.CompanyTxRunner
	users     repository.UserRepository
	sessions  repository.SessionRepository
	companies repository.CompanyRepository
	templates repository.InvoiceTemplateRepository
	invoices  repository.InvoiceRepository
	expenses  repository.ExpenseRepository
	close     func()
}

func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			pinger:    s,
			invoiceTx: s,
			companyTx: s,
			users:     s.Users(),
			sessions:  s.Sessions(),
			companies: s.Companies(),
			templates: s.Templates(),
			invoices:  s.Invoices(),
			expenses:  s.Expenses(),
			close:     func() {},
		}, nil
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &storage{
		pinger:    pool,
		invoiceTx: txRunner,
		companyTx: txRunner,
		users:     postgres.NewUserRepository(pool),
		sessions:  postgres.NewSessionRepository(pool),
		companies: postgres.NewCompanyRepository(pool),
		templates: postgres.NewInvoiceTemplateRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		expenses:  postgres.NewExpenseRepository(pool),
		close:     pool.Close,
	}, nil
}

// @title        Freelance Forge API
// @version      1.0
// @description  Facturación para freelancers: empresa, plantillas, facturas con PDF, gastos y asistente IA.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.users, store.sessions, auth.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL(),
		Issuer: cfg.Session.Issuer,
	})
	if n, err := authUC.PurgeExpiredSessions(ctx); err != nil {
		log.Warn().Err(err).Msg("purgar sesiones vencidas")
	} else if n > 0 {
		log.Info().Int64("sessions", n).Msg("sesiones vencidas eliminadas")
	}

	llm, err := infraai.NewLLMService(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar asistente IA")
	}
	if llm == nil {
		log.Info().Msg("asistente IA deshabilitado: falta la API key")
	}

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	metrics := httpRouter.NewMetrics()
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Freelance Forge API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:  cfg.App.Name,
		Store:        store.pinger,
		Metrics:      metrics,
		AuthUC:       authUC,
		CompanyUC:    usecase.NewCompanyUseCase(store.companyTx, store.companies),
		TemplateUC:   usecase.NewInvoiceTemplateUseCase(store.templates),
		InvoiceUC:    billing.NewInvoiceUseCase(store.invoiceTx, store.invoices, store.users, store.companies, store.templates),
		PDFUC:        billing.NewPDFUseCase(store.invoices, store.users, store.companies, store.templates, pdfGenerator),
		ExpenseUC:    usecase.NewExpenseUseCase(store.expenses, xlsx.NewExpenseExporter()),
		AIUC:         usecase.NewAIUseCase(llm, store.invoices),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.invoices, store.expenses),
		CookieSecure: cfg.Session.CookieSecure,
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
