package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/usecase"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
	"github.com/sadmanHT/CreditBridge-sub001/internal/infrastructure/config"
	"github.com/sadmanHT/CreditBridge-sub001/internal/infrastructure/messaging"
	"github.com/sadmanHT/CreditBridge-sub001/internal/infrastructure/postgres"
	grpcpresentation "github.com/sadmanHT/CreditBridge-sub001/internal/presentation/grpc"
	"github.com/sadmanHT/CreditBridge-sub001/internal/presentation/rest"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/auth"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/kafka"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/observability"
	pgutil "github.com/sadmanHT/CreditBridge-sub001/pkg/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting scoring-service")

	// Connect to PostgreSQL.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pgCfg := pgutil.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	pool, err := pgutil.NewPool(ctx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pgutil.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	// Initialize infrastructure adapters.
	assessmentRepo := postgres.NewAssessmentRepository(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, cfg.EventsTopic, logger)

	// Initialize the model ensemble with configured weights and bands.
	registry := service.NewRegistry()
	if err := registry.Register(service.ModelKeyCredit, service.NewCreditModel(), cfg.WeightCredit); err != nil {
		logger.Error("failed to register credit model", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := registry.Register(service.ModelKeyTrust, service.NewTrustModel(), cfg.WeightTrust); err != nil {
		logger.Error("failed to register trust model", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := registry.Register(service.ModelKeyFraud, service.NewFraudModel(), cfg.WeightFraud); err != nil {
		logger.Error("failed to register fraud model", slog.String("error", err.Error()))
		os.Exit(1)
	}

	explainEngine := service.NewExplainEngine(service.NewDefaultExplainerRegistry(), logger)

	ensemble, err := registry.BuildEnsemble(cfg.DecisionPolicy(), explainEngine)
	if err != nil {
		logger.Error("failed to build ensemble", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize use cases.
	scoreApplicantUC := usecase.NewScoreApplicant(assessmentRepo, eventPublisher, ensemble)
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)

	// Initialize JWT auth.
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     "creditbridge",
		Expiration: 24 * time.Hour,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize gRPC handler and server.
	grpcHandler := grpcpresentation.NewScoringServiceHandler(scoreApplicantUC, getAssessmentUC, registry, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService)

	// Initialize HTTP health and metrics server.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "scoring-service"})
	if err != nil {
		logger.Error("failed to initialize metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthHandler := rest.NewHealthHandler(logger, pool)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("scoring-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down scoring-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("scoring-service stopped")
}
