package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Reporting ReportingConfig
	AI        AIConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig holds options for the local snapshot slot.
type StorageConfig struct {
	Path       string
	QuotaBytes int
}

// ReportingConfig holds report timezone, archive scheduling and PDF license
// settings.
type ReportingConfig struct {
	Timezone         string
	ArchiveCron      string
	UnidocLicenseKey string
}

// AIConfig holds settings for the optional assistant.
type AIConfig struct {
	AnthropicKey string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	quota, err := strconv.Atoi(getenvWithDefault("STORAGE_QUOTA_BYTES", "5242880"))
	if err != nil {
		return nil, fmt.Errorf("STORAGE_QUOTA_BYTES must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			Path:       getenvWithDefault("SNAPSHOT_DB_PATH", "haccp.db"),
			QuotaBytes: quota,
		},
		Reporting: ReportingConfig{
			Timezone:         getenvWithDefault("TIMEZONE", "Europe/Paris"),
			ArchiveCron:      getenvWithDefault("REPORT_ARCHIVE_CRON", "0 23 * * *"),
			UnidocLicenseKey: os.Getenv("UNIDOC_LICENSE_API_KEY"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and coherent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Storage.Path == "" {
		return errors.New("SNAPSHOT_DB_PATH must be provided")
	}

	if c.Storage.QuotaBytes < 0 {
		return errors.New("STORAGE_QUOTA_BYTES must not be negative")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE is not a valid location: %w", err)
	}

	return nil
}

// AssistantKey resolves the Anthropic credential: the environment wins, the
// key stored in the application settings is the fallback.
func (c *Config) AssistantKey(settingsKey string) string {
	if c.AI.AnthropicKey != "" {
		return c.AI.AnthropicKey
	}
	return settingsKey
}

// Location resolves the configured report timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
