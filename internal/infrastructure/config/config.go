package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
)

// Config holds all configuration for the scoring service.
type Config struct {
	GRPCPort    string
	HTTPPort    string
	Environment string
	LogLevel    string
	LogFormat   string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	MigrationsDir string

	KafkaBroker string
	EventsTopic string

	JWTSecret string

	// Decision band and model weight policy. Exposed as configuration
	// because the bands are lending policy, not a structural invariant.
	ApproveThreshold int
	ReviewThreshold  int
	WeightCredit     decimal.Decimal
	WeightTrust      decimal.Decimal
	WeightFraud      decimal.Decimal
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	approveThreshold, err := getEnvInt("ENSEMBLE_APPROVE_THRESHOLD", 80)
	if err != nil {
		return nil, err
	}
	reviewThreshold, err := getEnvInt("ENSEMBLE_REVIEW_THRESHOLD", 60)
	if err != nil {
		return nil, err
	}

	weightCredit, err := getEnvDecimal("MODEL_WEIGHT_CREDIT", "0.50")
	if err != nil {
		return nil, err
	}
	weightTrust, err := getEnvDecimal("MODEL_WEIGHT_TRUST", "0.25")
	if err != nil {
		return nil, err
	}
	weightFraud, err := getEnvDecimal("MODEL_WEIGHT_FRAUD", "0.25")
	if err != nil {
		return nil, err
	}

	return &Config{
		GRPCPort:    getEnv("GRPC_PORT", "8093"),
		HTTPPort:    getEnv("HTTP_PORT", "9093"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "creditbridge"),
		DBPassword: getEnv("DB_PASSWORD", "creditbridge"),
		DBName:     getEnv("DB_NAME", "creditbridge_scoring"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "file://./migrations"),

		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		EventsTopic: getEnv("EVENTS_TOPIC", "scoring.events"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		ApproveThreshold: approveThreshold,
		ReviewThreshold:  reviewThreshold,
		WeightCredit:     weightCredit,
		WeightTrust:      weightTrust,
		WeightFraud:      weightFraud,
	}, nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// DecisionPolicy returns the configured decision bands.
func (c *Config) DecisionPolicy() service.DecisionPolicy {
	return service.DecisionPolicy{
		ApproveThreshold: c.ApproveThreshold,
		ReviewThreshold:  c.ReviewThreshold,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value := getEnv(key, defaultValue)
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s must be a decimal: %w", key, err)
	}
	return parsed, nil
}
