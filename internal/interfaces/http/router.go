package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/devis-renovation-api/internal/application/analytics"
	"github.com/jhoicas/devis-renovation-api/internal/application/auth"
	"github.com/jhoicas/devis-renovation-api/internal/application/billing"
	"github.com/jhoicas/devis-renovation-api/internal/application/catalog"
	"github.com/jhoicas/devis-renovation-api/internal/application/dto"
	"github.com/jhoicas/devis-renovation-api/internal/application/usecase"
	"github.com/jhoicas/devis-renovation-api/internal/domain/entity"
	"github.com/jhoicas/devis-renovation-api/pkg/logger"
)

// AppOptions configuración de la aplicación Fiber.
type AppOptions struct {
	Name        string
	CORSOrigins string // lista separada por comas; vacío = *
	SwaggerFile string // ruta a swagger.json; si no existe no se monta /docs
	Log         *logger.Logger
}

// NewApp crea la aplicación Fiber con recover, request id, CORS, log de peticiones y /health.
func NewApp(opts AppOptions) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))

	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    "Devis Rénovation API",
			}))
		} else {
			log.Warn().Str("file", opts.SwaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	CatalogUC   *catalog.UseCase
	QuoteUC     *billing.QuoteUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	// AuthRateLimit peticiones por minuto e IP en register/login; 0 = sin límite.
	AuthRateLimit int
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	errs := errorMapper{log: deps.Log}
	api := app.Group("/api")

	// Auth (público, con límite de peticiones)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	authGroup := api.Group("/auth")
	public := []fiber.Handler{}
	if deps.AuthRateLimit > 0 {
		public = append(public, limiter.New(limiter.Config{
			Max:        deps.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde",
				})
			},
		}))
	}
	authGroup.Post("/register", append(public, authHandler.Register)...)
	authGroup.Post("/login", append(public, authHandler.Login)...)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Catálogos de referencia (público)
	refs := api.Group("/references")
	refHandler := NewReferenceHandler(deps.CatalogUC, errs)
	refs.Get("/kitchen/types", refHandler.List(entity.CatalogKitchenTypes))
	refs.Get("/kitchen/worktops", refHandler.List(entity.CatalogWorktops))
	refs.Get("/partitions", refHandler.List(entity.CatalogPartitions))
	refs.Get("/partitions/options", refHandler.List(entity.CatalogPartitionOptions))
	refs.Get("/paints", refHandler.List(entity.CatalogPaints))
	refs.Get("/floorings", refHandler.List(entity.CatalogFloorings))
	refs.Get("/floorings/installs", refHandler.List(entity.CatalogFlooringInstalls))
	refs.Get("/extras", refHandler.List(entity.CatalogExtras))
	refs.Get("/services", refHandler.Services)

	// Rutas protegidas (requieren Bearer Token); el middleware va por grupo
	// para que una ruta desconocida bajo /api responda 404 y no 401.
	auth := AuthMiddleware(deps.JWTSecret)

	// Company (protegido)
	company := api.Group("/company", auth)
	companyHandler := NewCompanyHandler(deps.CompanyUC, errs)
	company.Get("/", companyHandler.Get)
	company.Put("/", companyHandler.Update)

	// Quotes (protegido)
	quotes := api.Group("/quotes", auth)
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.PDFUC, errs)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Patch("/:id", quoteHandler.Patch)
	quotes.Delete("/:id", quoteHandler.Delete)
	quotes.Get("/:id/pdf", quoteHandler.PDF)

	// Invoices (protegido)
	invoices := api.Group("/invoices", auth)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, errs)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Dashboard (protegido)
	dashboard := api.Group("/dashboard", auth)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, errs)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
