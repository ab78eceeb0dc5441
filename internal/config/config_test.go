package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOURCE_KIND", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceFileName, cfg.SourceFileName)
	assert.Equal(t, "Inventario_Ativo.xlsx", cfg.ExportFileName)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "Inventario_Ativo.xlsx"), cfg.ExportPath())
	assert.Equal(t, 60, cfg.SyncIntervalSec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SOURCE_KIND", "HTTP")
	t.Setenv("SOURCE_ORIGIN", "http://intranet.local/dash")
	t.Setenv("SOURCE_TIMEOUT_MS", "1500")
	t.Setenv("SYNC_AUTO_EXPORT", "yes")
	t.Setenv("IMAP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http", cfg.SourceKind)
	assert.Equal(t, "http://intranet.local/dash", cfg.SourceOrigin)
	assert.Equal(t, 1500, cfg.SourceTimeoutMs)
	assert.True(t, cfg.SyncAutoExport)
	assert.Equal(t, 993, cfg.IMAPPort)
}

func TestRequire(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.Require("IMAP_HOST", "  "))
	assert.NoError(t, cfg.Require("IMAP_HOST", "mail.local"))
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{LogLevel: "bogus", LogFormat: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	_ = logger.Sync()
}
