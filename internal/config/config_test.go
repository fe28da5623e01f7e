package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SNAPSHOT_DB_PATH", "")
	t.Setenv("STORAGE_QUOTA_BYTES", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("REPORT_ARCHIVE_CRON", "")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "haccp.db", cfg.Storage.Path)
	assert.Equal(t, 5242880, cfg.Storage.QuotaBytes)
	assert.Equal(t, "Europe/Paris", cfg.Reporting.Timezone)
	assert.Equal(t, "0 23 * * *", cfg.Reporting.ArchiveCron)
	assert.Empty(t, cfg.Reporting.UnidocLicenseKey)
	assert.Empty(t, cfg.AI.AnthropicKey)
	assert.Equal(t, "Europe/Paris", cfg.Location().String())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SNAPSHOT_DB_PATH", "/tmp/state.db")
	t.Setenv("STORAGE_QUOTA_BYTES", "1024")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("UNIDOC_LICENSE_API_KEY", "metered-key")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/state.db", cfg.Storage.Path)
	assert.Equal(t, 1024, cfg.Storage.QuotaBytes)
	assert.Equal(t, "metered-key", cfg.Reporting.UnidocLicenseKey)
	assert.Equal(t, "sk-test", cfg.AI.AnthropicKey)
}

func TestAssistantKeyFallsBackToSettings(t *testing.T) {
	cfg := &Config{AI: AIConfig{AnthropicKey: "sk-env"}}
	assert.Equal(t, "sk-env", cfg.AssistantKey("sk-stored"))

	cfg.AI.AnthropicKey = ""
	assert.Equal(t, "sk-stored", cfg.AssistantKey("sk-stored"))
	assert.Empty(t, cfg.AssistantKey(""))
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_QUOTA_BYTES", "lots")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("STORAGE_QUOTA_BYTES", "1024")
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Storage:   StorageConfig{Path: "haccp.db", QuotaBytes: 1024},
		Reporting: ReportingConfig{Timezone: "Europe/Paris"},
	}
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.Storage.QuotaBytes = -1
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Reporting.Timezone = ""
	assert.Error(t, bad.Validate())
}
