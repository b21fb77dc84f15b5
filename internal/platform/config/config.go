package config

import (
	"os"
	"strings"

	pstrings "regent/pkg/platform/strings"
)

// Server captures process-level configuration.
type Server struct {
	Addr       string
	AdminToken string
	// JWTSigningKey validates bearer tokens on the saved-analysis endpoints.
	JWTSigningKey string
	// PostgresDSN, when set, switches the obligation reference store from the
	// bundled YAML data to Postgres.
	PostgresDSN string
	// RedisAddr, when set, switches the analysis history store from memory to
	// Redis.
	RedisAddr string
	// KafkaBrokers, when non-empty, enables the Kafka audit trail publisher.
	KafkaBrokers []string
	// OpenAIKey enables the natural-language profile extractor endpoint.
	OpenAIKey   string
	OpenAIModel string
	// ReferenceDataDir holds the YAML obligation and use-case files.
	ReferenceDataDir string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             getenv("REGENT_ADDR", ":8080"),
		AdminToken:       os.Getenv("REGENT_ADMIN_TOKEN"),
		JWTSigningKey:    getenv("REGENT_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		PostgresDSN:      os.Getenv("REGENT_POSTGRES_DSN"),
		RedisAddr:        os.Getenv("REGENT_REDIS_ADDR"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		ReferenceDataDir: getenv("REGENT_DATA_DIR", "data"),
	}
	if brokers := os.Getenv("REGENT_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = pstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
