package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Store      StoreConfig
	Pipeline   PipelineConfig
}

// ExtractionConfig holds extraction-engine-related configuration
type ExtractionConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// StoreConfig holds persistent-store-related configuration
type StoreConfig struct {
	Driver           string // "postgres" or "sqlite"
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// PipelineConfig holds document-pipeline tuning knobs
type PipelineConfig struct {
	// MaxPageChars is the formatted-page length above which the page is split
	// at table boundaries before extraction.
	MaxPageChars int
	// PageDelay is the pacing delay between consecutive extraction calls.
	PageDelay time.Duration
	// ItemsPerPage is the fixed page size used when packing items for storage.
	ItemsPerPage int
	// RowsPerChunk is the fixed chunk size for spreadsheet sources.
	RowsPerChunk int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 1.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Store: StoreConfig{
			Driver:           getEnv("STORE_DRIVER", "sqlite"),
			DSN:              getEnv("STORE_DSN", "file:invoices.db"),
			MaxConns:         getEnvAsInt32("STORE_MAX_CONNS", 10),
			MinConns:         getEnvAsInt32("STORE_MIN_CONNS", 2),
			MaxConnLifetime:  getEnvAsDuration("STORE_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("STORE_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("STORE_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("STORE_STATEMENT_TIMEOUT", 0),
		},
		Pipeline: PipelineConfig{
			MaxPageChars: getEnvAsInt("EXTRACT_MAX_PAGE_CHARS", 16000),
			PageDelay:    getEnvAsDuration("EXTRACT_PAGE_DELAY", time.Second),
			ItemsPerPage: getEnvAsInt("INVOICE_ITEMS_PER_PAGE", 10),
			RowsPerChunk: getEnvAsInt("SPREADSHEET_ROWS_PER_CHUNK", 10),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extraction.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.Store.DSN == "" {
		return NewAppError("CONFIG_ERROR", "STORE_DSN is required", ErrInvalidInput)
	}
	if c.Pipeline.ItemsPerPage <= 0 {
		return NewAppError("CONFIG_ERROR", "INVOICE_ITEMS_PER_PAGE must be positive", ErrInvalidInput)
	}
	if c.Pipeline.RowsPerChunk <= 0 {
		return NewAppError("CONFIG_ERROR", "SPREADSHEET_ROWS_PER_CHUNK must be positive", ErrInvalidInput)
	}
	return nil
}
