package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the complete application configuration.
//
// Provider credentials are deliberately optional: a missing credential
// disables that provider and the affected channel degrades to its fallback
// path (or Unknown), it never makes startup fail. Only the LLM pipeline
// reports a missing key as a user-visible configuration error, and only
// when a pipeline run is actually requested.
type Config struct {
	Database  DatabaseConfig
	AI        AIConfig
	Registrar RegistrarConfig
	Search    SearchConfig
	Server    ServerConfig
	Checker   CheckerConfig
}

// DatabaseConfig holds the optional Postgres connection used for the verdict
// cache and run history. Empty URL means both are disabled.
type DatabaseConfig struct {
	URL          string
	CacheTTL     time.Duration
	CacheEnabled bool
}

// AIConfig holds LLM settings for candidate generation and fit scoring.
type AIConfig struct {
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// RegistrarConfig holds registrar API (XML-RPC) settings.
type RegistrarConfig struct {
	Endpoint    string
	Username    string
	Password    string
	Timeout     time.Duration
	HourlyLimit int
}

// SearchConfig holds web-search API settings.
type SearchConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// CheckerConfig holds resolution and pipeline tunables.
type CheckerConfig struct {
	PremiumPriceThreshold float64
	DNSTimeout            time.Duration
	HTTPProbeTimeout      time.Duration
	MaxChannelsPerCheck   int
	MaxConcurrentChecks   int
	MaxCandidates         int
	DefaultTLDs           []string
	ExtendedTLDs          []string
	Platforms             []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return &Config{
		Database: DatabaseConfig{
			URL:          getEnvOrDefault("DATABASE_URL", ""),
			CacheTTL:     getEnvDurationOrDefault("CACHE_TTL", time.Hour),
			CacheEnabled: getEnvBoolOrDefault("CACHE_ENABLED", true),
		},
		AI: AIConfig{
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4.1-mini"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", ""),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 2000),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.8),
			Timeout:     getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
		},
		Registrar: RegistrarConfig{
			Endpoint:    getEnvOrDefault("REGISTRAR_API_URL", "https://api.loopia.se/RPCSERV"),
			Username:    os.Getenv("REGISTRAR_API_USER"),
			Password:    os.Getenv("REGISTRAR_API_PASSWORD"),
			Timeout:     getEnvDurationOrDefault("REGISTRAR_TIMEOUT", 8*time.Second),
			HourlyLimit: getEnvIntOrDefault("REGISTRAR_HOURLY_LIMIT", 60),
		},
		Search: SearchConfig{
			APIKey:   os.Getenv("SEARCH_API_KEY"),
			Endpoint: getEnvOrDefault("SEARCH_API_URL", "https://google.serper.dev/search"),
			Timeout:  getEnvDurationOrDefault("SEARCH_TIMEOUT", 6*time.Second),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Checker: CheckerConfig{
			PremiumPriceThreshold: getEnvFloatOrDefault("PREMIUM_PRICE_THRESHOLD", 249),
			DNSTimeout:            getEnvDurationOrDefault("DNS_TIMEOUT", 4*time.Second),
			HTTPProbeTimeout:      getEnvDurationOrDefault("HTTP_PROBE_TIMEOUT", 3*time.Second),
			MaxChannelsPerCheck:   getEnvIntOrDefault("MAX_CHANNELS_PER_CHECK", 24),
			MaxConcurrentChecks:   getEnvIntOrDefault("MAX_CONCURRENT_CHECKS", 4),
			MaxCandidates:         getEnvIntOrDefault("MAX_CANDIDATES", 10),
			DefaultTLDs:           splitOrDefault("DEFAULT_TLDS", []string{"com", "io", "co", "net"}),
			ExtendedTLDs:          splitOrDefault("EXTENDED_TLDS", []string{"com", "io", "co", "net", "org", "app", "dev", "ai"}),
			Platforms:             splitOrDefault("SOCIAL_PLATFORMS", []string{"instagram", "x", "github", "youtube", "tiktok", "medium"}),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
