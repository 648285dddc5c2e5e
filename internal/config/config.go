package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration, loaded once at startup from
// the environment (adapted from the teacher's config.Load pattern, with
// OpenSearch/Postgres/Supabase/JWT sections dropped since this pipeline
// has no document index, relational catalog, or authenticated API
// surface — see DESIGN.md).
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Storage     StorageConfig
	Processing  ProcessingConfig
	AI          AIConfig
	Logging     LoggingConfig
	Environment string
}

type ServerConfig struct {
	Port           string
	Production     bool
	AllowedOrigins string
	MaxRequestSize int64
}

// StoreConfig points at the SQLite-backed Knowledge Store.
type StoreConfig struct {
	Path string
}

type StorageConfig struct {
	Backend   string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	CDNDomain string
}

type ProcessingConfig struct {
	MaxFileSize    int64
	MaxWorkers     int
	BatchSize      int
	ProcessTimeout time.Duration
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type ClaudeConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// AIConfig configures the LLM Corrector's providers: Ollama (local,
// free), OpenAI and Claude (spec.md §4.3). The HTTP facade's
// selectProvider always picks Ollama; OpenAI and Claude are not used as
// fallbacks.
type AIConfig struct {
	Ollama         OllamaConfig
	OpenAI         OpenAIConfig
	Claude         ClaudeConfig
	EnableFallback bool
	RetryAttempts  int
	RetryDelay     time.Duration
	Temperature    float64
	BatchSize      int
	BatchTimeout   time.Duration
}

type LoggingConfig struct {
	Level              string
	Format             string
	EnableRequestLog   bool
	EnableErrorDetails bool
	EnableStackTrace   bool
}

// Load reads Config from the environment, applying the same
// environment-tiered defaults the teacher's Load does.
func Load() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "local")
	if getEnvBool("PRODUCTION", false) {
		environment = "production"
	}

	var defaultOrigins string
	if environment == "local" {
		defaultOrigins = "http://localhost:3000,http://localhost:5173"
	}

	maxRequestSize, err := parseEnvInt64("MAX_REQUEST_SIZE", 100*1024*1024)
	if err != nil {
		return nil, err
	}
	maxFileSize, err := parseEnvInt64("MAX_FILE_SIZE", 100*1024*1024)
	if err != nil {
		return nil, err
	}
	maxWorkers, err := parseEnvInt("MAX_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	batchSize, err := parseEnvInt("BATCH_SIZE", 5)
	if err != nil {
		return nil, err
	}
	processTimeout, err := parseEnvDuration("PROCESS_TIMEOUT", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: environment,
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Production:     environment == "production" || environment == "staging",
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", defaultOrigins),
			MaxRequestSize: maxRequestSize,
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "./data/jyotishkb.db"),
		},
		Storage: StorageConfig{
			Backend:   getEnv("STORAGE_BACKEND", "local"),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", getEnv("DO_SPACES_KEY", "")),
			SecretKey: getEnv("STORAGE_SECRET_KEY", getEnv("DO_SPACES_SECRET", "")),
			Bucket:    getEnv("STORAGE_BUCKET", getEnv("DO_SPACES_BUCKET", "jyotishkb-sources")),
			Region:    getEnv("STORAGE_REGION", getEnv("DO_SPACES_REGION", "nyc3")),
			CDNDomain: getEnv("STORAGE_CDN_DOMAIN", getEnv("DO_SPACES_CDN_DOMAIN", "")),
		},
		Processing: ProcessingConfig{
			MaxFileSize:    maxFileSize,
			MaxWorkers:     maxWorkers,
			BatchSize:      batchSize,
			ProcessTimeout: processTimeout,
		},
		AI: AIConfig{
			Ollama: OllamaConfig{
				BaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
				Model:   getEnv("OLLAMA_MODEL", "gpt-oss:20b"),
				Timeout: getEnvDuration("OLLAMA_TIMEOUT", 120*time.Second),
			},
			OpenAI: OpenAIConfig{
				APIKey: getEnv("OPENAI_API_KEY", ""),
				Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			},
			Claude: ClaudeConfig{
				APIKey:  getEnv("CLAUDE_API_KEY", ""),
				Model:   getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
				BaseURL: getEnv("CLAUDE_BASE_URL", "https://api.anthropic.com"),
			},
			EnableFallback: getEnvBool("AI_ENABLE_FALLBACK", true),
			RetryAttempts:  getEnvInt("AI_RETRY_ATTEMPTS", 3),
			RetryDelay:     getEnvDuration("AI_RETRY_DELAY", 5*time.Second),
			Temperature:    getEnvFloat("AI_TEMPERATURE", 0),
			BatchSize:      getEnvInt("AI_BATCH_SIZE", 5),
			BatchTimeout:   getEnvDuration("AI_BATCH_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level:              getEnv("LOG_LEVEL", "info"),
			Format:             getEnv("LOG_FORMAT", "text"),
			EnableRequestLog:   getEnvBool("ENABLE_REQUEST_LOGGING", true),
			EnableErrorDetails: getEnvBool("ENABLE_ERROR_DETAILS", environment == "local"),
			EnableStackTrace:   getEnvBool("ENABLE_STACK_TRACE", environment == "local"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateProcessing()
}

func (c *Config) validateServer() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Backend != "local" && c.Storage.Backend != "spaces" {
		return fmt.Errorf("STORAGE_BACKEND must be 'local' or 'spaces'")
	}
	if c.Storage.Backend == "spaces" {
		if c.Storage.AccessKey == "" {
			return fmt.Errorf("STORAGE_ACCESS_KEY is required for spaces backend")
		}
		if c.Storage.SecretKey == "" {
			return fmt.Errorf("STORAGE_SECRET_KEY is required for spaces backend")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for spaces backend")
		}
		if c.Storage.Region == "" {
			return fmt.Errorf("STORAGE_REGION is required for spaces backend")
		}
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	if c.Processing.MaxWorkers <= 0 {
		return fmt.Errorf("MAX_WORKERS must be positive")
	}
	if c.Processing.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be positive")
	}
	if c.Processing.ProcessTimeout <= 0 {
		return fmt.Errorf("PROCESS_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func parseEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", key)
	}
	return intValue, nil
}

func parseEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number", key)
	}
	return intValue, nil
}

func parseEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration", key)
	}
	return duration, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Server.Production
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}
