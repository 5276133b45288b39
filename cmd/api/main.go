package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/carebridge/portal-api/config"
	"github.com/carebridge/portal-api/internal/email"
	"github.com/carebridge/portal-api/internal/handler"
	appointmentHandler "github.com/carebridge/portal-api/internal/handler/appointment"
	healthrecordHandler "github.com/carebridge/portal-api/internal/handler/healthrecord"
	labreportHandler "github.com/carebridge/portal-api/internal/handler/labreport"
	medicationHandler "github.com/carebridge/portal-api/internal/handler/medication"
	metricHandler "github.com/carebridge/portal-api/internal/handler/metric"
	profileHandler "github.com/carebridge/portal-api/internal/handler/profile"
	"github.com/carebridge/portal-api/internal/middleware"
	"github.com/carebridge/portal-api/internal/repository/postgres"
	"github.com/carebridge/portal-api/internal/router"
	appointmentService "github.com/carebridge/portal-api/internal/service/appointment"
	healthrecordService "github.com/carebridge/portal-api/internal/service/healthrecord"
	labreportService "github.com/carebridge/portal-api/internal/service/labreport"
	medicationService "github.com/carebridge/portal-api/internal/service/medication"
	metricService "github.com/carebridge/portal-api/internal/service/metric"
	profileService "github.com/carebridge/portal-api/internal/service/profile"
	"github.com/carebridge/portal-api/pkg/auth"
	"github.com/carebridge/portal-api/pkg/logger"
	"github.com/carebridge/portal-api/pkg/metrics"
	"github.com/carebridge/portal-api/pkg/notifier"
)

func main() {
	appLog := logger.NewLogger(nil).With("api")

	cfg, err := config.LoadConfig()
	if err != nil {
		appLog.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLog.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("portal", "api")

	var notify notifier.Notifier = notifier.Nop{}
	if cfg.Redis.URL != "" {
		redisNotifier, err := notifier.NewRedisNotifier(cfg.Redis, &log.Logger, m)
		if err != nil {
			appLog.Fatal(err, "failed to connect to Redis")
		}
		defer redisNotifier.Close()
		notify = redisNotifier
	}

	var mailer email.Service = email.Nop{}
	if cfg.SMTP.Host != "" {
		mailer = email.NewService(cfg.SMTP)
	}

	base := postgres.NewBaseRepository(db, m)
	profileRepo := postgres.NewProfileRepository(base)
	personalRepo := postgres.NewPersonalInfoRepository(base)
	vitalsRepo := postgres.NewVitalsRepository(base)
	lifestyleRepo := postgres.NewLifestyleRepository(base)
	medicationRepo := postgres.NewMedicationRepository(base)
	labReportRepo := postgres.NewLabReportRepository(base)
	metricsRepo := postgres.NewMetricsRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)

	profileSvc := profileService.NewService(profileRepo, notify)
	healthRecordSvc := healthrecordService.NewService(personalRepo, vitalsRepo, lifestyleRepo, profileSvc, notify)
	medicationSvc := medicationService.NewService(medicationRepo, profileSvc, notify)
	labReportSvc := labreportService.NewService(labReportRepo, profileSvc, notify)
	metricSvc := metricService.NewService(metricsRepo, profileSvc, notify)
	appointmentSvc := appointmentService.NewService(appointmentRepo, profileSvc, mailer, notify)

	authMiddleware := middleware.NewAuthMiddleware(auth.NewVerifier(cfg.JWT.Secret))

	h := handler.NewHandler(db)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		profileHandler.NewHandler(profileSvc),
		healthrecordHandler.NewHandler(healthRecordSvc),
		medicationHandler.NewHandler(medicationSvc),
		labreportHandler.NewHandler(labReportSvc),
		metricHandler.NewHandler(metricSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsConfig,
			MetricsPrefix: "portal_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error(err, "forced shutdown")
		os.Exit(1)
	}
	appLog.Info("server stopped")
}
