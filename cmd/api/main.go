package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/unifix/complaint-service/internal/api/http"
	"github.com/unifix/complaint-service/internal/api/http/handlers"
	"github.com/unifix/complaint-service/internal/auth"
	"github.com/unifix/complaint-service/internal/config"
	"github.com/unifix/complaint-service/internal/events"
	"github.com/unifix/complaint-service/internal/observability"
	"github.com/unifix/complaint-service/internal/persistence"
	"github.com/unifix/complaint-service/internal/repository"
	"github.com/unifix/complaint-service/internal/schema"
	"github.com/unifix/complaint-service/internal/service"
	"github.com/unifix/complaint-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	probe := schema.NewProbe(pool, logger)
	userRepo := repository.NewUserRepository(pool, probe)
	complaintRepo := repository.NewComplaintRepository(pool, probe)
	solutionRepo := repository.NewSolutionRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	metrics := observability.NewMetrics()

	dispatcher := events.NewInMemoryDispatcher()
	for _, eventType := range []events.EventType{
		events.EventComplaintSubmitted,
		events.EventComplaintAssigned,
		events.EventComplaintPriorityChanged,
		events.EventComplaintResolved,
		events.EventUserRemoved,
	} {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			metrics.RecordEvent(string(event.Type))
			return nil
		})
	}
	dedup := persistence.NewDedupChecker(redis)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost)
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		SolutionRepo:  solutionRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
		UploadsDir:    cfg.Uploads.Dir,
	})
	reportService := service.NewReportService(reportRepo)
	notificationService := service.NewNotificationService(dispatcher, dedup, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	sessionMiddleware := auth.NewSessionMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:              handlers.NewAuthHandler(authService),
		Complaints:        handlers.NewComplaintsHandler(complaintService),
		Users:             handlers.NewUsersHandler(userService),
		Reports:           handlers.NewReportsHandler(reportService),
		SessionMiddleware: sessionMiddleware,
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
