package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings, loaded from the environment with an
// optional .env file.
type Config struct {
	Port        string
	Environment string

	JWTSecret    []byte
	JWTExpiresIn time.Duration

	AdminEmail    string
	AdminPassword string

	AMQPURL         string
	AMQPExchange    string
	AuditRoutingKey string
	OTLPEndpoint    string
	DebugRoutes     bool
}

// Load reads configuration from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8083"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "dev-secret")),
		JWTExpiresIn:    getDuration("JWT_EXPIRES_IN", 168*time.Hour),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@torochat.local"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "admin123"),
		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "torochat.events"),
		AuditRoutingKey: getEnv("AUDIT_ROUTING_KEY", "audit_log.chat"),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		DebugRoutes:     getEnv("DEBUG_ROUTES", "") == "true",
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("invalid duration for %s: %v, using default", key, err)
		return fallback
	}
	return d
}
