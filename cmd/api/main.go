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

	"github.com/healthbridge/records-api/config"
	"github.com/healthbridge/records-api/internal/email"
	"github.com/healthbridge/records-api/internal/handler"
	appointmentHandler "github.com/healthbridge/records-api/internal/handler/appointment"
	authHandler "github.com/healthbridge/records-api/internal/handler/auth"
	conversationHandler "github.com/healthbridge/records-api/internal/handler/conversation"
	doctorHandler "github.com/healthbridge/records-api/internal/handler/doctor"
	emrHandler "github.com/healthbridge/records-api/internal/handler/emr"
	metricHandler "github.com/healthbridge/records-api/internal/handler/metric"
	patientHandler "github.com/healthbridge/records-api/internal/handler/patient"
	prescriptionHandler "github.com/healthbridge/records-api/internal/handler/prescription"
	profileHandler "github.com/healthbridge/records-api/internal/handler/profile"
	"github.com/healthbridge/records-api/internal/middleware"
	"github.com/healthbridge/records-api/internal/repository/postgres"
	redisrepo "github.com/healthbridge/records-api/internal/repository/redis"
	"github.com/healthbridge/records-api/internal/router"
	appointmentService "github.com/healthbridge/records-api/internal/service/appointment"
	authService "github.com/healthbridge/records-api/internal/service/auth"
	"github.com/healthbridge/records-api/internal/service/export"
	"github.com/healthbridge/records-api/internal/service/identity"
	"github.com/healthbridge/records-api/internal/service/messaging"
	metricService "github.com/healthbridge/records-api/internal/service/metric"
	"github.com/healthbridge/records-api/internal/service/record"
	"github.com/healthbridge/records-api/pkg/auth"
	"github.com/healthbridge/records-api/pkg/logger"
	"github.com/healthbridge/records-api/pkg/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Logger)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	redisClient, err := redisrepo.NewClient(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	emrRepo := postgres.NewEMRRepository(db)
	labResultRepo := postgres.NewLabResultRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	metricRepo := postgres.NewHealthMetricRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	tokenRepo := redisrepo.NewTokenRepository(redisClient)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewService(cfg.SMTP)

	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher, emailSvc)
	identitySvc := identity.NewService(profileRepo)
	recordSvc := record.NewService(identitySvc, emrRepo, labResultRepo, prescriptionRepo)
	appointmentSvc := appointmentService.NewService(identitySvc, appointmentRepo)
	metricSvc := metricService.NewService(identitySvc, metricRepo)
	messagingSvc := messaging.NewService(conversationRepo, messageRepo, userRepo)
	exportSvc := export.NewService()

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	engine := router.New(authMiddleware, router.Handlers{
		Auth:         authHandler.NewHandler(authSvc),
		Profile:      profileHandler.NewHandler(identitySvc),
		Patient:      patientHandler.NewHandler(identitySvc),
		Doctor:       doctorHandler.NewHandler(identitySvc),
		EMR:          emrHandler.NewHandler(recordSvc),
		Prescription: prescriptionHandler.NewHandler(recordSvc, exportSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Metric:       metricHandler.NewHandler(metricSvc),
		Conversation: conversationHandler.NewHandler(messagingSvc),
		Ops:          handler.NewHandler(db),
	}, router.Config{
		RateLimit:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:      cfg.RateLimit.Burst,
		CORSConfig:     middleware.DefaultCORSConfig(),
		DirectoryCache: cfg.Cache.DirectoryTTL,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
