package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL string
	Port        string
	Environment string
	FrontendURL string
	LogLevel    string
	AutoMigrate bool
	JWTSecret   string
	TokenTTL    time.Duration
	LLM         LLMConfig
	Prompt      PromptConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "6969"),
		Environment: strings.ToLower(getEnv("APP_ENV", getEnv("NODE_ENV", EnvDevelopment))),
		FrontendURL: os.Getenv("FRONTEND_URL"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		AutoMigrate: parseBool(getEnv("AUTO_MIGRATE", "true"), true),
		JWTSecret:   os.Getenv("AUTH_JWT_SECRET"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
	}

	llm, err := loadLLM()
	if err != nil {
		return nil, err
	}
	cfg.LLM = llm

	prompt := DefaultPromptConfig()
	if path := os.Getenv("PROMPT_CONFIG"); path != "" {
		prompt, err = LoadPromptFile(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.Prompt = prompt

	return cfg, nil
}

// IsDevelopment reports whether detailed errors may be exposed to clients.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// AuthEnabled reports whether bearer tokens are required on the API.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// CORSOrigins lists the browser origins allowed to call the API. Development
// allows the usual local dev servers; other environments only FRONTEND_URL.
func (c *Config) CORSOrigins() []string {
	if c.IsDevelopment() {
		origins := []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"http://127.0.0.1:3001",
			"http://localhost:5173",
		}
		if c.FrontendURL != "" {
			origins = append(origins, c.FrontendURL)
		}
		return origins
	}
	if c.FrontendURL == "" {
		return []string{}
	}
	return []string{c.FrontendURL}
}

func loadLLM() (LLMConfig, error) {
	cfg := LLMConfig{
		Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderAnthropic)),
		Timeout:  parseDuration(getEnv("LLM_TIMEOUT", "30s"), 30*time.Second),
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		cfg.APIKey = getEnv("CLAUDE_API_KEY", os.Getenv("ANTHROPIC_API_KEY"))
		cfg.Model = getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022")
		cfg.BaseURL = getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com")
	case ProviderGemini:
		cfg.APIKey = getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
		cfg.Model = getEnv("GEMINI_MODEL", "gemini-2.0-flash")
		cfg.BaseURL = os.Getenv("GEMINI_BASE_URL")
	default:
		return LLMConfig{}, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(input))
	if err != nil {
		return fallback
	}
	return b
}
