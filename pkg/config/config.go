package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	DBDriver string
	// DatabaseURL is used by the postgres driver, SQLitePath by sqlite.
	DatabaseURL string
	SQLitePath  string

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
	AdminCode     string

	LLM     LLM
	Breaker Breaker

	RateLimitPerMinute int
	RateLimitBurst     int
	UploadMaxBytes     int

	LogJSON     bool
	LogDebug    bool
	PromptsFile string
}

type LLM struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	AppTitle string
	Referer  string
	Timeout  time.Duration
}

type Breaker struct {
	MaxFailures int
	OpenTimeout time.Duration
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getEnv("SQLITE_PATH", "./interviews.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "mock-interview"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 60),
		AdminCode:     os.Getenv("ADMIN_CODE"),
		LLM: LLM{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenRouter)),
			APIKey:   os.Getenv("LLM_API_KEY"),
			BaseURL:  os.Getenv("LLM_BASE_URL"),
			Model:    os.Getenv("LLM_MODEL"),
			AppTitle: getEnv("LLM_APP_TITLE", "Mock Interview"),
			Referer:  os.Getenv("LLM_REFERER"),
			Timeout:  time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Breaker: Breaker{
			MaxFailures: getEnvInt("BREAKER_MAX_FAILURES", 5),
			OpenTimeout: time.Duration(getEnvInt("BREAKER_OPEN_SECONDS", 30)) * time.Second,
		},
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		UploadMaxBytes:     getEnvInt("UPLOAD_MAX_BYTES", 15<<20),
		LogJSON:            getEnvBool("LOG_JSON", false),
		LogDebug:           getEnvBool("LOG_DEBUG", false),
		PromptsFile:        os.Getenv("PROMPTS_FILE"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
