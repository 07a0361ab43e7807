package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DurabilityMode controls how the log stores treat file I/O failures.
// BestEffort swallows them (the in-memory cache stays authoritative);
// Strict surfaces them to callers.
const (
	DurabilityBestEffort = "best-effort"
	DurabilityStrict     = "strict"
)

const (
	defaultAdminEmail       = "designerfatii@gmail.com"
	defaultActivityLogDir   = "./activity-log"
	defaultNotificationsDir = "./admin-notifications"

	activityLogFile   = "activity-log.json"
	notificationsFile = "notifications.json"
)

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	ServerPort     string
	ServerHost     string
	Environment    string

	AdminEmail        string
	ActivityLogDir    string
	ActivityLogFile   string
	NotificationsDir  string
	NotificationsFile string
	DurabilityMode    string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitBlockDuration time.Duration

	LogLevel  string
	LogFormat string

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

var (
	ErrMissingDatabaseURL    = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret      = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL       = errors.New("invalid token TTL format")
	ErrInvalidDurabilityMode = errors.New("LOG_DURABILITY must be best-effort or strict")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost:  getEnvOrDefault("SERVER_HOST", "localhost"),
		Environment: getEnvOrDefault("ENV", "development"),

		AdminEmail:        getEnvOrDefault("ADMIN_EMAIL", defaultAdminEmail),
		ActivityLogFile:   activityLogFile,
		NotificationsFile: notificationsFile,
		DurabilityMode:    getEnvOrDefault("LOG_DURABILITY", DurabilityBestEffort),

		RedisURL:               getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled:       getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),
		RateLimitIPAttempts:    getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 10),
		RateLimitIPWindow:      getEnvOrDefaultDuration("RATE_LIMIT_IP_WINDOW", 15*time.Minute),
		RateLimitBlockDuration: getEnvOrDefaultDuration("RATE_LIMIT_BLOCK_DURATION", 15*time.Minute),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	cfg.ActivityLogDir, cfg.NotificationsDir = resolveStorageDirs()

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.DurabilityMode != DurabilityBestEffort && cfg.DurabilityMode != DurabilityStrict {
		return nil, ErrInvalidDurabilityMode
	}

	accessTokenTTL, err := parseTokenTTL(getEnvOrDefault("JWT_ACCESS_TOKEN_TTL", "604800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	return cfg, nil
}

// resolveStorageDirs picks the log store directories. Serverless deployments
// get ephemeral temp directories; otherwise the paths are env-configurable
// with relative defaults.
func resolveStorageDirs() (activityDir, notificationsDir string) {
	if IsEphemeralEnvironment() {
		return filepath.Join(os.TempDir(), "activity-log"),
			filepath.Join(os.TempDir(), "admin-notifications")
	}
	return getEnvOrDefault("ACTIVITY_LOG_PATH", defaultActivityLogDir),
		getEnvOrDefault("NOTIFICATIONS_PATH", defaultNotificationsDir)
}

// IsEphemeralEnvironment reports whether the process runs on a platform with
// an ephemeral filesystem.
func IsEphemeralEnvironment() bool {
	return os.Getenv("SERVERLESS") == "1" || os.Getenv("VERCEL") == "1"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// parseTokenTTL parses a TTL given in seconds
func parseTokenTTL(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseAllowedOrigins(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
