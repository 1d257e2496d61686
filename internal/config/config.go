package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config aggregates all runtime settings required by the web application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	API         APIConfig
	Mock        MockConfig
	Session     SessionConfig
	Redis       RedisConfig
	Assistant   AssistantConfig
	Dev         DevConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// APIConfig points the live client at the task-management backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MockConfig controls the canned-data provider that replaces the live
// backend while it is unavailable or still being built.
type MockConfig struct {
	Enabled   bool
	JWTSecret string
}

type SessionConfig struct {
	Backend       string
	CookieName    string
	TTL           time.Duration
	SweepInterval time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type AssistantConfig struct {
	Enabled     bool
	HistoryPath string
	OpenAIKey   string
	OpenAIModel string
}

type DevConfig struct {
	Tools bool
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the app can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	environment := getString("APP_ENV", "development")

	cfg := &Config{
		AppName:     getString("APP_NAME", "go-frontend"),
		Environment: environment,
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "3000"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		API: APIConfig{
			BaseURL: getString("API_BASE_URL", "http://localhost:8080/api/v1"),
			Timeout: getDuration("API_TIMEOUT", 10*time.Second),
		},
		Mock: MockConfig{
			Enabled:   getBool("MOCK_MODE", true),
			JWTSecret: getString("MOCK_JWT_SECRET", "fastygo-dev-secret"),
		},
		Session: SessionConfig{
			Backend:       strings.ToLower(getString("SESSION_BACKEND", SessionBackendMemory)),
			CookieName:    getString("SESSION_COOKIE", "fastygo_session"),
			TTL:           getDuration("SESSION_TTL", 24*time.Hour),
			SweepInterval: getDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Assistant: AssistantConfig{
			Enabled:     getBool("ASSISTANT_ENABLED", true),
			HistoryPath: getString("HISTORY_PATH", "./data/assistant.db"),
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel: getString("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Dev: DevConfig{
			Tools: getBool("DEV_TOOLS", environment == "development"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
