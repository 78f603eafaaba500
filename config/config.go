package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	Firebase  FirebaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Watch     WatchConfig
	Archive   ArchiveConfig
	Redis     RedisConfig
	Line      LineConfig
	Client    ClientConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// WatchConfig describes the static watch-point registry and the admin
// passcode gate.
type WatchConfig struct {
	PointCount   int
	PasscodeHash string // bcrypt hash of the shared dashboard passcode
}

// ArchiveConfig locates the photo archive root. Photos land in
// <Root>/<point>/<date>/<shift>/.
type ArchiveConfig struct {
	Root           string
	ParentFolderID string // folder id the clients send, echoed for compatibility
}

// RedisConfig configures the optional per-date status cache. Empty Addr
// disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LineConfig holds the LINE Messaging API credentials for the notifier.
type LineConfig struct {
	ChannelToken string
	GroupID      string
}

// ClientConfig configures the field-client core (sync agent).
type ClientConfig struct {
	RemoteURL string
	QueuePath string // SQLite file holding the pending-report queue
	Timeout   time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Host:        getEnv("HOST", "0.0.0.0"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "dev-secret-key"),
			Expiration: parseDuration(getEnv("JWT_EXPIRATION", "12h"), 12*time.Hour),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./serviceAccountKey.json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		RateLimit: RateLimitConfig{
			Requests: parseInt(getEnv("RATE_LIMIT_REQUESTS", "100"), 100),
			Window:   parseDuration(getEnv("RATE_LIMIT_WINDOW", "60"), 60*time.Second),
		},
		Watch: WatchConfig{
			PointCount:   parseInt(getEnv("WATCH_POINT_COUNT", "20"), 20),
			PasscodeHash: getEnv("ADMIN_PASSCODE_HASH", ""),
		},
		Archive: ArchiveConfig{
			Root:           getEnv("ARCHIVE_ROOT", "./archive"),
			ParentFolderID: getEnv("ARCHIVE_PARENT_FOLDER_ID", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			TTL:      parseDuration(getEnv("REDIS_STATUS_TTL", "30s"), 30*time.Second),
		},
		Line: LineConfig{
			ChannelToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
			GroupID:      getEnv("LINE_GROUP_ID", ""),
		},
		Client: ClientConfig{
			RemoteURL: getEnv("REMOTE_API_URL", "http://localhost:8080"),
			QueuePath: getEnv("PENDING_QUEUE_PATH", "./pending.db"),
			Timeout:   parseDuration(getEnv("REMOTE_TIMEOUT", "20s"), 20*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	// If it's just a number, assume seconds
	if i, err := strconv.Atoi(s); err == nil {
		return time.Duration(i) * time.Second
	}
	return defaultValue
}

func parseStringSlice(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) Validate() {
	if c.JWT.Secret == "dev-secret-key" && c.IsProduction() {
		log.Fatal("JWT_SECRET must be set in production")
	}
	if c.Watch.PointCount <= 0 {
		log.Fatal("WATCH_POINT_COUNT must be positive")
	}
	if c.Watch.PasscodeHash == "" && c.IsProduction() {
		log.Fatal("ADMIN_PASSCODE_HASH must be set in production")
	}
}
