package config

import (
	"os"
	"strconv"
	"strings"
)

// Search backends selectable at startup.
const (
	SearchBackendOpenSearch = "opensearch"
	SearchBackendPgvector   = "pgvector"
)

type Config struct {
	Env  string
	Port string

	EmbedEndpoint string
	EmbedModelID  string
	EmbedTimeout  int
	EmbedCacheSize int

	GenEndpoint string
	GenModelID  string
	GenTimeout  int

	SearchBackend      string
	OpenSearchEndpoint string
	OpenSearchIndex    string
	SearchTimeout      int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	TopK            int
	MaxAnswerTokens int

	OTelLogs bool
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),

		EmbedEndpoint:  getEnv("EMBED_ENDPOINT", "http://model-gateway:8080"),
		EmbedModelID:   getEnv("EMBED_MODEL_ID", "amazon.titan-embed-text-v2:0"),
		EmbedTimeout:   getEnvInt("EMBED_TIMEOUT_SECONDS", 30),
		EmbedCacheSize: getEnvInt("EMBED_CACHE_SIZE", 512),

		GenEndpoint: getEnv("GEN_ENDPOINT", "http://model-gateway:8080"),
		GenModelID:  getEnv("GEN_MODEL_ID", "anthropic.claude-3-5-sonnet-20240620-v1:0"),
		GenTimeout:  getEnvInt("GEN_TIMEOUT_SECONDS", 60),

		SearchBackend:      getEnv("SEARCH_BACKEND", SearchBackendOpenSearch),
		OpenSearchEndpoint: getEnv("OPENSEARCH_ENDPOINT", "http://opensearch:9200"),
		OpenSearchIndex:    getEnv("OPENSEARCH_INDEX", "kb_chunks"),
		SearchTimeout:      getEnvInt("SEARCH_TIMEOUT_SECONDS", 15),

		DBHost:     getEnv("DB_HOST", "filings-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "filings_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "filings_password"),
		DBName:     getEnv("DB_NAME", "filings_db"),

		TopK:            getEnvInt("RETRIEVAL_TOP_K", 8),
		MaxAnswerTokens: getEnvInt("ANSWER_MAX_TOKENS", 512),

		OTelLogs: getEnvBool("OTEL_LOGS_ENABLED", false),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
