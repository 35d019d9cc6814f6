package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/simanis/notary-system/docs"
	"github.com/simanis/notary-system/internal/api/handler"
	"github.com/simanis/notary-system/internal/api/middleware"
	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/service"
	mongodb "github.com/simanis/notary-system/internal/infrastructure/db/mongo"
	redisdb "github.com/simanis/notary-system/internal/infrastructure/db/redis"
	"github.com/simanis/notary-system/internal/infrastructure/queue"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. ctx bounds the lifetime of the background timeline workers.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("simanis"))

	// --- Repositories ---
	authRepo := mongodb.NewAuthRepository(db)
	caseRepo := mongodb.NewCaseRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	timelineRepo := mongodb.NewTimelineRepository(db)
	documentRepo := mongodb.NewDocumentRepository(db)
	serviceTypeRepo := mongodb.NewServiceTypeRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	invoiceRepo := mongodb.NewInvoiceRepository(db)
	worksheetRepo := mongodb.NewWorksheetRepository(db)
	deedRepo := mongodb.NewDeedDraftRepository(db)
	legalityRepo := mongodb.NewLegalityRepository(db)

	// Timeline writes go through a sharded dispatcher so the audit trail
	// stays ordered per case without blocking request handling.
	timeline := queue.NewTimelineDispatcher(0, timelineRepo, log)
	timeline.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(authRepo, jwtSecret, 24*time.Hour)
	caseService := service.NewCaseService(caseRepo, timeline, documentRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, log)
	worksheetService := service.NewWorksheetService(worksheetRepo, log)
	deedService := service.NewDeedService(deedRepo, legalityRepo, caseRepo, timeline, log)
	wizardService := service.NewWizardService(
		redisdb.NewWizardStore(rdb),
		redisdb.NewReferenceReserver(rdb),
		serviceTypeRepo,
		clientRepo,
		caseService,
		log,
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	caseHandler := handler.NewCaseHandler(caseService)
	clientHandler := handler.NewClientHandler(clientService)
	wizardHandler := handler.NewWizardHandler(wizardService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	worksheetHandler := handler.NewWorksheetHandler(worksheetService)
	deedHandler := handler.NewDeedHandler(deedService)
	catalogHandler := handler.NewServiceTypeHandler(serviceTypeRepo, categoryRepo)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Authenticated routes ---
	// The role is re-resolved from the user store on every request, so a
	// role change takes effect without reissuing tokens.
	v1 := e.Group("/v1", middleware.Auth(jwtSecret, authService.ResolveRole))

	v1.GET("/dashboard/summary", caseHandler.Summary, middleware.RequireCapability(domain.CapCasesRead))

	v1.GET("/cases", caseHandler.List, middleware.RequireCapability(domain.CapCasesRead))
	v1.POST("/cases", caseHandler.Create, middleware.RequireCapability(domain.CapCasesWrite))
	v1.GET("/cases/:reference_number", caseHandler.Get, middleware.RequireCapability(domain.CapCasesRead))
	v1.PUT("/cases/:reference_number", caseHandler.Update, middleware.RequireCapability(domain.CapCasesWrite))
	v1.POST("/cases/:reference_number/transition", caseHandler.Transition, middleware.RequireCapability(domain.CapCasesTransition))
	v1.POST("/cases/:reference_number/notes", caseHandler.AddNote, middleware.RequireCapability(domain.CapCasesWrite))
	v1.POST("/cases/:reference_number/documents/received", caseHandler.MarkDocumentReceived, middleware.RequireCapability(domain.CapCasesWrite))
	v1.POST("/documents/:id/verify", caseHandler.VerifyDocument, middleware.RequireCapability(domain.CapCasesWrite))

	v1.POST("/wizard", wizardHandler.Start, middleware.RequireCapability(domain.CapCasesWrite))
	v1.GET("/wizard/:id", wizardHandler.Get, middleware.RequireCapability(domain.CapCasesWrite))
	v1.PUT("/wizard/:id/steps", wizardHandler.SaveStep, middleware.RequireCapability(domain.CapCasesWrite))
	v1.POST("/wizard/:id/submit", wizardHandler.Submit, middleware.RequireCapability(domain.CapCasesWrite))
	v1.DELETE("/wizard/:id", wizardHandler.Discard, middleware.RequireCapability(domain.CapCasesWrite))

	v1.GET("/clients", clientHandler.List, middleware.RequireCapability(domain.CapClientsRead))
	v1.POST("/clients", clientHandler.Create, middleware.RequireCapability(domain.CapClientsWrite))
	v1.GET("/clients/:id", clientHandler.Get, middleware.RequireCapability(domain.CapClientsRead))
	v1.PUT("/clients/:id", clientHandler.Update, middleware.RequireCapability(domain.CapClientsWrite))

	v1.GET("/invoices", invoiceHandler.List, middleware.RequireCapability(domain.CapFinanceRead))
	v1.POST("/invoices", invoiceHandler.Create, middleware.RequireCapability(domain.CapFinanceWrite))
	v1.GET("/invoices/:id", invoiceHandler.Get, middleware.RequireCapability(domain.CapFinanceRead))
	v1.POST("/invoices/:id/pay", invoiceHandler.MarkPaid, middleware.RequireCapability(domain.CapFinanceWrite))

	v1.GET("/worksheets", worksheetHandler.List, middleware.RequireCapability(domain.CapWorksheetsRead))
	v1.POST("/worksheets", worksheetHandler.Create, middleware.RequireCapability(domain.CapWorksheetsWrite))
	v1.GET("/worksheets/:id", worksheetHandler.Get, middleware.RequireCapability(domain.CapWorksheetsRead))
	v1.PUT("/worksheets/:id", worksheetHandler.Update, middleware.RequireCapability(domain.CapWorksheetsWrite))

	v1.GET("/cases/:reference_number/deed-drafts", deedHandler.ListDrafts, middleware.RequireCapability(domain.CapCasesRead))
	v1.POST("/cases/:reference_number/deed-drafts", deedHandler.CreateDraft, middleware.RequireCapability(domain.CapCasesWrite))
	v1.PUT("/deed-drafts/:id", deedHandler.UpdateDraft, middleware.RequireCapability(domain.CapCasesWrite))
	v1.GET("/cases/:reference_number/verifications", deedHandler.ListVerifications, middleware.RequireCapability(domain.CapCasesRead))
	v1.POST("/cases/:reference_number/verifications", deedHandler.RecordVerification, middleware.RequireCapability(domain.CapCasesWrite))

	v1.GET("/service-types", catalogHandler.ListTypes, middleware.RequireCapability(domain.CapCasesRead))
	v1.GET("/service-types/:id", catalogHandler.GetType, middleware.RequireCapability(domain.CapCasesRead))
	v1.GET("/categories", catalogHandler.ListCategories, middleware.RequireCapability(domain.CapCasesRead))

	// Account creation is restricted to user managers; there is no open
	// self-registration.
	v1.POST("/users", authHandler.Register, middleware.RequireCapability(domain.CapUsersManage))
	v1.GET("/users", authHandler.ListUsers, middleware.RequireCapability(domain.CapUsersManage))
	v1.PUT("/users/:id/role", authHandler.AssignRole, middleware.RequireCapability(domain.CapUsersManage))

	return e
}
