package main

import (
	"context"
	"fmt"
	"log"

	"go-datasync/internal/api"
	"go-datasync/internal/config"
	"go-datasync/internal/database"
	"go-datasync/internal/features/auth"
	"go-datasync/internal/features/facility"
	"go-datasync/internal/features/metrics"
	"go-datasync/internal/features/registration"
	"go-datasync/internal/features/sync"
	"go-datasync/internal/features/system"
	"go-datasync/internal/features/target"
	"go-datasync/internal/logger"
	"go-datasync/internal/middleware"
	"go-datasync/pkg/utils"

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
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			auth.NewUserRepository,
			facility.NewFacilityRepository,
			target.NewTargetRepository,
			registration.NewRegistrationRepository,
			sync.NewOperationLogRepository,

			// Initialize Service
			auth.NewAuthService,
			facility.NewFacilityService,
			target.NewTargetService,
			registration.NewRegistrationService,
			sync.NewPusherSet,
			sync.NewBroadcaster,
			sync.NewSyncService,
			sync.NewSchedulerService,
			metrics.NewMetricsService,

			// Initialize Controller
			auth.NewAuthController,
			facility.NewFacilityController,
			target.NewTargetController,
			registration.NewRegistrationController,
			sync.NewSyncController,
			metrics.NewMetricsController,
			system.NewHealthController,
			system.NewWebSocketController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(facility.NewFacilityApi),
			AsRoute(target.NewTargetApi),
			AsRoute(registration.NewRegistrationApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(metrics.NewMetricsApi),
			AsRoute(system.NewSystemApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler sync.SchedulerService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return scheduler.StopScheduler()
					},
				})
			},
			func(lc fx.Lifecycle, authService auth.AuthService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return authService.EnsureAdmin(ctx)
					},
				})
			},
		),
	)

	app.Run()
}
