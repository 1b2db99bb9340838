package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "grn-console/internal/common/api"
	"grn-console/internal/config"
	"grn-console/internal/database"
	"grn-console/internal/features/audit"
	"grn-console/internal/features/erp"
	"grn-console/internal/features/grn"
	"grn-console/internal/features/realtime"
	"grn-console/internal/features/report"
	"grn-console/internal/features/system"
	"grn-console/internal/logger"
	"grn-console/internal/middleware"
	"grn-console/pkg/utils"

	_ "grn-console/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   fiber.Map{"code": "HTTP_ERROR", "message": err.Error(), "retryable": code >= 500},
			})
		},
	})

	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("Setting up route", zap.String("type", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("Listening", zap.String("addr", port))
				if err := app.Listen(port); err != nil {
					log.Fatal("Server failed to start", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// InitializeSchema creates the approval store's unique index or table before serving
func InitializeSchema(lc fx.Lifecycle, repo grn.ApprovalRepository, log *zap.Logger) {
	schema, ok := repo.(grn.SchemaInitializer)
	if !ok {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := schema.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("ensure approval schema: %w", err)
			}
			log.Info("Approval store schema ready", zap.String("store", fmt.Sprintf("%T", repo)))
			return nil
		},
	})
}

// @title           GRN Approval Console API
// @version         1.0
// @description     Goods receipt note bill approval pipeline: send, admin approval, GM approval, close.

// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	utils.SetSecret(cfg.JWTSecret)

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			// Initialize Logger
			logger.NewDBLogWriter,
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			audit.NewAuditRepository,
			grn.NewApprovalRepository,

			// Realtime feed
			realtime.NewHub,
			func(h *realtime.Hub) grn.RecordPublisher { return h },

			// ERP candidate feed
			erp.NewCache,
			erp.NewSource,
			erp.NewFilter,

			// Initialize Service
			audit.NewAuditService,
			grn.NewApprovalService,
			erp.NewCandidateService,
			erp.NewRefreshScheduler,
			report.NewReportService,

			// Initialize Controller
			audit.NewAuditController,
			grn.NewApprovalController,
			erp.NewCandidateController,
			report.NewReportController,
			realtime.NewWebSocketController,

			// Initialize API Routes
			AsRoute(grn.NewApprovalApi),
			AsRoute(erp.NewCandidateApi),
			AsRoute(report.NewReportApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(realtime.NewWebSocketApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewDebugApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			InitializeSchema,
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			erp.RegisterRefreshScheduler,
			StartServer,
		),
	)

	app.Run()
}
