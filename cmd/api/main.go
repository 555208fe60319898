package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cookfarm/pantry-service/internal/api/dto"
	httptransport "github.com/cookfarm/pantry-service/internal/api/http"
	"github.com/cookfarm/pantry-service/internal/api/http/handlers"
	"github.com/cookfarm/pantry-service/internal/auth"
	"github.com/cookfarm/pantry-service/internal/config"
	"github.com/cookfarm/pantry-service/internal/events"
	"github.com/cookfarm/pantry-service/internal/observability"
	"github.com/cookfarm/pantry-service/internal/persistence"
	"github.com/cookfarm/pantry-service/internal/repository"
	"github.com/cookfarm/pantry-service/internal/service"
	"github.com/cookfarm/pantry-service/internal/worker"
)

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

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	userRepo, ingredientRepo := buildRepositories(pg, logger)

	var revocations auth.Revocations = auth.NewMemoryRevocations()
	if redis.Enabled() {
		revocations = auth.NewRedisRevocations(redis.Client)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(dispatcher, logger).RegisterHandlers()

	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
	})
	ingredientService := service.NewIngredientService(service.IngredientDependencies{
		IngredientRepo: ingredientRepo,
		UserRepo:       userRepo,
		Dispatcher:     dispatcher,
	})
	calendar := service.NewCalendarView(ingredientRepo)
	authMiddleware := auth.NewAuthMiddleware(userService.TokenManager(), revocations, userRepo)

	expiryDone := worker.NewExpiryWorker(calendar, dispatcher, logger, cfg.Expiry.SweepInterval()).Start(ctx)

	metrics := observability.NewMetrics()
	validator := dto.NewValidator()

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:           cfg.HTTP.RequestTimeout(),
		CORSAllowedOrigin: cfg.HTTP.CORSAllowedOrigin,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		BasePath:       cfg.App.BasePath,
		RequireToken:   cfg.Auth.RequireToken,
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:          handlers.NewUsersHandler(userService, validator),
		Ingredients:    handlers.NewIngredientsHandler(ingredientService, validator),
		Calendar:       handlers.NewCalendarHandler(calendar),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	<-expiryDone
	_ = app.Shutdown()
}

// buildRepositories selects postgres-backed storage when a pool is configured and
// the in-process store otherwise.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) (repository.UserRepository, repository.IngredientRepository) {
	if pg.Enabled() {
		pool := pg.PoolHandle()
		return repository.NewUserRepository(pool), repository.NewIngredientRepository(pool)
	}
	logger.Warn("using in-memory storage; data is lost on restart")
	store := repository.NewMemoryStore()
	return store.Users(), store.Ingredients()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
