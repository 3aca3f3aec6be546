package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/clinic-service/internal/api/http"
	"github.com/spec-kit/clinic-service/internal/api/http/handlers"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/observability"
	"github.com/spec-kit/clinic-service/internal/persistence"
	"github.com/spec-kit/clinic-service/internal/repository"
	"github.com/spec-kit/clinic-service/internal/service"
	"github.com/spec-kit/clinic-service/internal/worker"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	patientRepo := repository.NewPatientRepository(pool)
	doctorRepo := repository.NewDoctorRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	prescriptionRepo := repository.NewPrescriptionRepository(pool)
	recordRepo := repository.NewMedicalRecordRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	fitSampleRepo := repository.NewFitSampleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PatientRepo:       patientRepo,
		DoctorRepo:        doctorRepo,
		PasswordResetRepo: resetRepo,
	})
	accountService := service.NewAccountService(*cfg, userRepo, patientRepo, doctorRepo)
	patientService := service.NewPatientService(patientRepo)
	doctorService := service.NewDoctorService(doctorRepo)
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: appointmentRepo,
		DoctorRepo:      doctorRepo,
		PatientRepo:     patientRepo,
		Dispatcher:      dispatcher,
	})
	billingService := service.NewBillingService(invoiceRepo, patientRepo, dispatcher)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, patientRepo, doctorRepo, dispatcher)
	recordService := service.NewMedicalRecordService(recordRepo, patientRepo, doctorRepo)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger, cfg.Notification)

	var fetcher service.FitFetcher
	if cfg.FitSync.Enabled {
		fetcher = service.StubFetcher{}
	}
	fitSyncService := service.NewFitSyncService(fitSampleRepo, patientRepo, fetcher)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo, redis.Client, cfg.Auth.LivenessCacheTTL())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:            handlers.NewAuthHandler(authService),
		Accounts:        handlers.NewAccountsHandler(accountService),
		Patients:        handlers.NewPatientsHandler(patientService),
		Doctors:         handlers.NewDoctorsHandler(doctorService, appointmentService),
		Appointments:    handlers.NewAppointmentsHandler(appointmentService, patientService, doctorService),
		Billing:         handlers.NewBillingHandler(billingService, patientService),
		Prescriptions:   handlers.NewPrescriptionsHandler(prescriptionService, patientService),
		Records:         handlers.NewRecordsHandler(recordService, patientService),
		Notifications:   handlers.NewNotificationsHandler(notificationService),
		FitSync:         handlers.NewFitSyncHandler(fitSyncService),
		AuthMiddleware:  authMiddleware,
		MetricsGatherer: registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.App.Addr()))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
