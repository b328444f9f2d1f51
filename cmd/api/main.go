package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/team-feedback/internal/application/analytics"
	"github.com/jhoicas/team-feedback/internal/application/auth"
	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/jhoicas/team-feedback/internal/application/reports"
	"github.com/jhoicas/team-feedback/internal/application/usecase"
	"github.com/jhoicas/team-feedback/internal/domain/repository"
	"github.com/jhoicas/team-feedback/internal/infrastructure/csvexport"
	"github.com/jhoicas/team-feedback/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/team-feedback/internal/infrastructure/pdf"
	"github.com/jhoicas/team-feedback/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/team-feedback/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/team-feedback/internal/interfaces/http"
	"github.com/jhoicas/team-feedback/pkg/config"
	"github.com/jhoicas/team-feedback/pkg/logger"
)

// storage repositorios y proveedor de identidad del driver elegido.
type storage struct {
	companies repository.CompanyRepository
	members   repository.MemberRepository
	feedbacks repository.FeedbackRepository
	identity  ports.IdentityProvider
	tx        auth.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	sessions, limiter, closeSessions, err := openSessions(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer closeSessions()

	authUC := auth.NewAuthUseCase(st.identity, st.members, st.tx, sessions, limiter, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	companyUC := usecase.NewCompanyUseCase(st.companies)
	memberUC := usecase.NewMemberUseCase(st.members, st.feedbacks, st.identity, log, cfg.Auth.GeneratedPasswordLength)
	feedbackUC := usecase.NewFeedbackUseCase(st.feedbacks, st.members, log)
	reportUC := analytics.NewReportUseCase(st.members, st.feedbacks)
	exportUC := reports.NewExportUseCase(reportUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Team Feedback API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		MemberUC:    memberUC,
		FeedbackUC:  feedbackUC,
		ReportUC:    reportUC,
		ExportUC:    exportUC,
		CSVRenderer: csvexport.NewRenderer(),
		PDFRenderer: infrapdf.NewMarotoReportRenderer(),
		JWTSecret:   cfg.JWT.Secret,
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

// openStorage abre PostgreSQL (aplicando migraciones si corresponde) o el almacén en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			companies: store.Companies(),
			members:   store.Members(),
			feedbacks: store.Feedbacks(),
			identity:  memory.NewIdentityProvider(),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		companies: postgres.NewCompanyRepository(pool),
		members:   postgres.NewMemberRepository(pool),
		feedbacks: postgres.NewFeedbackRepository(pool),
		identity:  postgres.NewIdentityProvider(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

// openSessions usa Redis si está configurado; si no, los equivalentes en memoria (una sola instancia).
func openSessions(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.SessionStore, ports.LoginLimiter, func(), error) {
	window := time.Duration(cfg.Auth.LoginWindowMinutes) * time.Minute
	if !cfg.Redis.Enabled() {
		log.Warn().Msg("Redis no configurado: sesiones revocadas y límite de login en memoria")
		return memory.NewSessionStore(), memory.NewLoginLimiter(cfg.Auth.LoginMaxAttempts, window), func() {}, nil
	}
	client, err := infraredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar Redis")
		}
	}
	return infraredis.NewSessionStore(client), infraredis.NewLoginLimiter(client, cfg.Auth.LoginMaxAttempts, window), closeFn, nil
}
