package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Concert backend
	BackendURL     string
	BackendTimeout time.Duration

	// Circuit breaker around the backend
	BreakerMaxRequests  int
	BreakerFailureRatio float64
	BreakerTimeout      time.Duration

	// Redis configuration. An empty URL keeps sessions and drafts in memory.
	RedisURL string

	// Session and wizard state
	SessionTTL           time.Duration
	DraftTTL             time.Duration
	SubmitLockTTL        time.Duration
	BookingRedirectDelay time.Duration
	CookieSecure         bool

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUserID       string

	// Abuse protection
	LoginRatePerMinute int

	// Monitoring
	EnableMetrics bool
	OTLPEndpoint  string
	OTLPInsecure  bool
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env: %v", err)
	}

	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Backend
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8080"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", "10s"),

		BreakerMaxRequests:  getEnvAsInt("BREAKER_MAX_REQUESTS", 20),
		BreakerFailureRatio: getEnvAsFloat("BREAKER_FAILURE_RATIO", 0.6),
		BreakerTimeout:      getEnvAsDuration("BREAKER_TIMEOUT", "30s"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Session
		SessionTTL:           getEnvAsDuration("SESSION_TTL", "24h"),
		DraftTTL:             getEnvAsDuration("DRAFT_TTL", "2h"),
		SubmitLockTTL:        getEnvAsDuration("SUBMIT_LOCK_TTL", "30s"),
		BookingRedirectDelay: getEnvAsDuration("BOOKING_REDIRECT_DELAY", "3s"),
		CookieSecure:         getEnvAsBool("COOKIE_SECURE", false),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "concert-pass"),

		LoginRatePerMinute: getEnvAsInt("LOGIN_RATE_PER_MIN", 10),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure:  getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
