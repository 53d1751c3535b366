package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/pawup/shelter-api/internal/api/http"
	"github.com/pawup/shelter-api/internal/api/http/handlers"
	"github.com/pawup/shelter-api/internal/auth"
	"github.com/pawup/shelter-api/internal/cache"
	"github.com/pawup/shelter-api/internal/config"
	"github.com/pawup/shelter-api/internal/events"
	"github.com/pawup/shelter-api/internal/observability"
	"github.com/pawup/shelter-api/internal/persistence"
	"github.com/pawup/shelter-api/internal/repository"
	"github.com/pawup/shelter-api/internal/service"
	"github.com/pawup/shelter-api/internal/worker"
	"github.com/pawup/shelter-api/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrConfigurationMissing) {
			log.Fatalf("refusing to start: %v", err)
		}
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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

	db := pg.DB()
	if cfg.Postgres.RunMigrations && cfg.Postgres.DSN != "" {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, migrationSource(cfg.Postgres.MigrationsDir), logger.Named("migrate")); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher()
	animalCache := cache.NewAnimalCache(redis.Client(), cfg.Cache.NewestAnimalsTTL(), logger.Named("cache"))
	worker.StartNotificationWorker(dispatcher, animalCache, logger, cfg.Notification)

	userRepo := repository.NewUserRepository(db)
	animalRepo := repository.NewAnimalRepository(db)
	assoRepo := repository.NewAssociationRepository(db)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger.Named("auth"),
		Metrics:    metrics,
	})
	if err != nil {
		if errors.Is(err, config.ErrConfigurationMissing) {
			logger.Fatal("refusing to start: auth not configured", zap.Error(err))
		}
		logger.Fatal("failed to init auth", zap.Error(err))
	}
	userService := service.NewUserService(userRepo, dispatcher, logger)
	animalService := service.NewAnimalService(service.AnimalDependencies{
		AnimalRepo: animalRepo,
		Cache:      animalCache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	assoService := service.NewAssociationService(assoRepo, dispatcher, logger)

	cookie := auth.NewCookieOptions(cfg.Auth.Cookie)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenService(), cookie, logger.Named("gate"),
		auth.WithSlidingExpiry(cfg.Auth.SlidingExpiry),
		auth.WithMetrics(metrics),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:      logger,
		Metrics:     metrics,
		Timeout:     cfg.App.RequestTimeout(),
		FrontendURL: cfg.Cors.FrontendURL,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService, cookie, cfg.Cors.FrontendURL),
		Users:          handlers.NewUsersHandler(userService),
		Animals:        handlers.NewAnimalsHandler(animalService),
		Associations:   handlers.NewAssociationsHandler(assoService),
		AuthMiddleware: authMiddleware,
		Gatherer:       registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// migrationSource prefers an on-disk directory over the embedded files.
func migrationSource(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
