package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the server
type Config struct {
	Server     ServerConfig
	Explorer   ExplorerConfig
	Completion CompletionConfig
	Audit      AuditConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
	Security   SecurityConfig
	Proxy      ProxyConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// ExplorerConfig holds chain-explorer API settings
type ExplorerConfig struct {
	APIKey     string
	BaseURL    string
	APIVersion string // "v1" (per-chain host) or "v2" (unified endpoint)
	ChainID    int
	Timeout    int // seconds, per outbound lookup
	RPS        int // outbound request pacing, requests per second
}

// CompletionConfig holds completion-service settings
type CompletionConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout int // seconds, per outbound completion
}

// AuditConfig holds audit pipeline settings
type AuditConfig struct {
	MaxSourceChars int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string // "text" or "json"
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// SecurityConfig holds security filter settings
type SecurityConfig struct {
	FilterEnabled bool
	MaxBodySizeKB int
}

// ProxyConfig holds trusted proxy settings for X-Forwarded-For handling
type ProxyConfig struct {
	TrustProxy     bool
	TrustedProxies []string // CIDR notation
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 8080),
			Host:         getEnv("HOST", "0.0.0.0"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 120),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 120),
		},
		Explorer: ExplorerConfig{
			APIKey:     getEnv("EXPLORER_API_KEY", ""),
			BaseURL:    getEnv("EXPLORER_API_URL", "https://api.polygonscan.com"),
			APIVersion: getEnv("EXPLORER_API_VERSION", "v1"),
			ChainID:    getEnvInt("EXPLORER_CHAIN_ID", 137),
			Timeout:    getEnvInt("EXPLORER_TIMEOUT", 20),
			RPS:        getEnvInt("EXPLORER_RPS", 4),
		},
		Completion: CompletionConfig{
			APIKey:  getEnv("COMPLETION_API_KEY", ""),
			BaseURL: getEnv("COMPLETION_API_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("COMPLETION_MODEL", "llama-3.3-70b-versatile"),
			Timeout: getEnvInt("COMPLETION_TIMEOUT", 60),
		},
		Audit: AuditConfig{
			MaxSourceChars: getEnvInt("MAX_SOURCE_CHARS", 20000),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
		},
		Security: SecurityConfig{
			FilterEnabled: getEnvBool("SECURITY_FILTER_ENABLED", true),
			MaxBodySizeKB: getEnvInt("SECURITY_MAX_BODY_SIZE_KB", 64),
		},
		Proxy: ProxyConfig{
			TrustProxy:     getEnvBool("TRUST_PROXY", false),
			TrustedProxies: getEnvStringSlice("TRUSTED_PROXIES", []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
