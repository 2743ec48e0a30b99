package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DispatchMode selects how ticket submissions are executed.
type DispatchMode string

const (
	// DispatchSync awaits ticket creation and mirrors the downstream response.
	DispatchSync DispatchMode = "sync"
	// DispatchAsync acknowledges immediately and submits in the background.
	DispatchAsync DispatchMode = "async"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Desk     DeskConfig
	Token    TokenConfig
	Commerce CommerceConfig
	CORS     CORSConfig
	Dispatch DispatchConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// DeskConfig holds helpdesk API connection values.
type DeskConfig struct {
	Domain              string
	OrgID               string
	DefaultDepartmentID string
	DefaultContactID    string
}

// TokenConfig points at the token-issuing service.
type TokenConfig struct {
	ServiceURL string
}

// CommerceConfig holds commerce backend connection values.
type CommerceConfig struct {
	BaseURL  string
	APIToken string
}

// CORSConfig holds the origin allow-list. The first entry doubles as the
// fallback origin for requests whose Origin header is not listed.
type CORSConfig struct {
	AllowedOrigins []string
}

// DispatchConfig selects sync or fire-and-forget submission.
type DispatchConfig struct {
	Mode      DispatchMode
	QueueSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	origins := splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "https://example.com"))
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must contain at least one origin")
	}

	mode := DispatchMode(getEnv("DISPATCH_MODE", string(DispatchSync)))
	if mode != DispatchSync && mode != DispatchAsync {
		return nil, fmt.Errorf("invalid DISPATCH_MODE %q", mode)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "support-ticket-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Desk: DeskConfig{
			Domain:              os.Getenv("DESK_DOMAIN"),
			OrgID:               os.Getenv("DESK_ORG_ID"),
			DefaultDepartmentID: os.Getenv("DESK_DEFAULT_DEPARTMENT_ID"),
			DefaultContactID:    os.Getenv("DESK_DEFAULT_CONTACT_ID"),
		},
		Token: TokenConfig{
			ServiceURL: os.Getenv("TOKEN_SERVICE_URL"),
		},
		Commerce: CommerceConfig{
			BaseURL:  os.Getenv("COMMERCE_API_URL"),
			APIToken: os.Getenv("COMMERCE_API_TOKEN"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
		Dispatch: DispatchConfig{
			Mode:      mode,
			QueueSize: getEnvAsInt("DISPATCH_QUEUE_SIZE", 64),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// FallbackOrigin returns the origin used when a request's Origin header is not
// in the allow-list.
func (c CORSConfig) FallbackOrigin() string {
	if len(c.AllowedOrigins) == 0 {
		return ""
	}
	return c.AllowedOrigins[0]
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
