package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/suraksha-setu/relief-service/internal/api/http"
	"github.com/suraksha-setu/relief-service/internal/api/http/handlers"
	"github.com/suraksha-setu/relief-service/internal/auth"
	"github.com/suraksha-setu/relief-service/internal/config"
	"github.com/suraksha-setu/relief-service/internal/events"
	"github.com/suraksha-setu/relief-service/internal/observability"
	"github.com/suraksha-setu/relief-service/internal/persistence"
	"github.com/suraksha-setu/relief-service/internal/repository"
	"github.com/suraksha-setu/relief-service/internal/service"
	"github.com/suraksha-setu/relief-service/internal/storage"
	"github.com/suraksha-setu/relief-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	if cfg.Mongo.EnsureIndexes {
		if err := persistence.EnsureIndexes(ctx, mongo, logger); err != nil {
			logger.Fatal("failed to ensure indexes", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	images, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("failed to init upload dir", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(mongo.Collection("users"), redis.Client, cfg.Redis.RosterTTL())
	incidentRepo := repository.NewIncidentRepository(mongo.Collection("incidents"))
	resourceRepo := repository.NewResourceRepository(mongo.Collection("resources"))
	broadcastRepo := repository.NewBroadcastRepository(mongo.Collection("broadcasts"))
	safetyRepo := repository.NewSafetyCheckRepository(mongo.Collection("safety_checks"))

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	incidentService := service.NewIncidentService(incidentRepo, userRepo, dispatcher)
	resourceService := service.NewResourceService(resourceRepo, userRepo, dispatcher)
	broadcastService := service.NewBroadcastService(broadcastRepo, userRepo, dispatcher)
	safetyService := service.NewSafetyService(safetyRepo, userRepo, dispatcher)
	volunteerService := service.NewVolunteerService(userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, mongo, redis)
	usersHandler := handlers.NewUsersHandler(authService)
	incidentsHandler := handlers.NewIncidentsHandler(incidentService, images)
	resourcesHandler := handlers.NewResourcesHandler(resourceService)
	volunteersHandler := handlers.NewVolunteersHandler(volunteerService, incidentService)
	broadcastsHandler := handlers.NewBroadcastsHandler(broadcastService)
	safetyHandler := handlers.NewSafetyHandler(safetyService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Incidents:      incidentsHandler,
		Resources:      resourcesHandler,
		Volunteers:     volunteersHandler,
		Broadcasts:     broadcastsHandler,
		Safety:         safetyHandler,
		AuthMiddleware: authMiddleware,
		UploadDir:      images.Dir(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
