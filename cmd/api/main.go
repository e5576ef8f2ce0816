package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/devis-renovation-api/internal/application/analytics"
	"github.com/jhoicas/devis-renovation-api/internal/application/auth"
	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/application/usecase"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/cache"
	infracatalog "github.com/jhoicas/devis-renovation-api/internal/infrastructure/catalog"
	infrapdf "github.com/jhoicas/devis-renovation-api/internal/infrastructure/pdf"
	"github.com/jhoicas/devis-renovation-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/devis-renovation-api/internal/interfaces/http"
	"github.com/jhoicas/devis-renovation-api/pkg/config"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Caller:  cfg.App.Env == "development",
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.Migrate {
		version, err := postgres.Migrate(cfg.DB.ConnectionString())
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewCompanyProfileRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	referenceRepo := postgres.NewReferenceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché Redis opcional: sin REDIS_URL el catálogo se lee directo de PostgreSQL.
	var refCache catalog.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.Connect(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible; catálogo sin caché")
		} else {
			defer rc.Close()
			refCache = rc
		}
	}

	tariffs, err := infracatalog.NewLoader(cfg.Catalog.File).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("archivo de tarifas")
	}
	seeded, err := catalog.NewSeeder(referenceRepo, tariffs, refCache, log.Component("catalog")).SeedIfEmpty(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar catálogos")
	}
	log.Info().Int("items", seeded.Total()).Msg("catálogos de referencia listos")

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(profileRepo, userRepo).WithDefaultTaxRate(cfg.Quote.DefaultTaxRate)
	catalogUC := catalog.NewUseCase(referenceRepo, refCache, tariffs.Services).WithLogger(log.Component("catalog"))
	quoteUC := billing.NewQuoteUseCase(quoteRepo, companyUC, billing.QuoteDefaults{
		ValidityDays: cfg.Quote.DefaultValidityDays,
	}, log.Component("billing"))
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, txRunner, log.Component("billing"))
	pdfUC := billing.NewPDFUseCase(quoteRepo, invoiceRepo, companyUC, infrapdf.NewMarotoPDFGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, quoteRepo)

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
		Log:         log.Component("http"),
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		CompanyUC:     companyUC,
		CatalogUC:     catalogUC,
		QuoteUC:       quoteUC,
		InvoiceUC:     invoiceUC,
		PDFUC:         pdfUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
		AuthRateLimit: cfg.HTTP.AuthRateLimitPerMinute,
		Log:           log.Component("http"),
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
