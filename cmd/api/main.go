package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/travel-order-service/internal/api/http"
	"github.com/spec-kit/travel-order-service/internal/api/http/handlers"
	"github.com/spec-kit/travel-order-service/internal/auth"
	"github.com/spec-kit/travel-order-service/internal/config"
	"github.com/spec-kit/travel-order-service/internal/events"
	"github.com/spec-kit/travel-order-service/internal/observability"
	"github.com/spec-kit/travel-order-service/internal/persistence"
	"github.com/spec-kit/travel-order-service/internal/repository"
	"github.com/spec-kit/travel-order-service/internal/repository/memory"
	"github.com/spec-kit/travel-order-service/internal/service"
	"github.com/spec-kit/travel-order-service/internal/validation"
	"github.com/spec-kit/travel-order-service/internal/worker"
)

type repositories struct {
	users         repository.UserRepository
	orders        repository.TravelOrderRepository
	notifications repository.UserNotificationRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg, logger)
	registry := auth.NewPermissiveRegistry()
	if redis.Enabled() {
		registry = auth.NewRedisTokenRegistry(redis.Client)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	validator := validation.New(repos.users).WithReservedName(cfg.Auth.AdminName)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: repos.users,
		Registry: registry,
		Logger:   logger,
	})
	if _, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("failed to seed admin account", zap.Error(err))
	}

	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:  repos.orders,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	userService := service.NewUserService(repos.users, authService.Hasher(), logger)
	notificationService := service.NewNotificationService(repos.notifications, dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), authService.Registry(), repos.users)

	checks := map[string]handlers.Pinger{}
	if pg.PoolHandle() != nil {
		checks["postgres"] = pg
	}
	if redis.Enabled() {
		checks["redis"] = redis
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics, cfg.App.Debug),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		Debug:       cfg.App.Debug,
		CORSOrigins: cfg.App.CORSAllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:           handlers.NewAuthHandler(authService, validator),
		Orders:         handlers.NewOrdersHandler(orderService, validator),
		Users:          handlers.NewUsersHandler(userService, validator),
		Notifications:  handlers.NewNotificationsHandler(notificationService, validator),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("fiber shutdown", zap.Error(err))
	}
}

// buildRepositories returns Postgres repositories, or an in-memory set when
// no database is configured.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Warn("using in-memory repositories; data is lost on restart")
		store := memory.New()
		return repositories{
			users:         store.Users(),
			orders:        store.Orders(),
			notifications: store.Notifications(),
		}
	}
	return repositories{
		users:         repository.NewUserRepository(pool),
		orders:        repository.NewTravelOrderRepository(pool),
		notifications: repository.NewUserNotificationRepository(pool),
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
