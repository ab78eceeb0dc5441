package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const DefaultSourceFileName = "Inventário estoque PR01.xlsx"

type Config struct {
	DBPath         string
	OutputDir      string
	ExportFileName string
	LayoutPath     string

	SourceKind      string
	SourcePath      string
	SourceOrigin    string
	SourceFileName  string
	SourceTimeoutMs int

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMailbox  string
	IMAPScanMax  int

	SyncIntervalSec int
	SyncAutoExport  bool

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	fileName := getEnv("SOURCE_FILE_NAME", DefaultSourceFileName)
	cfg := Config{
		DBPath:         getEnv("DB_PATH", filepath.Join(cwd, "data", "session.db")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ExportFileName: getEnv("EXPORT_FILE_NAME", "Inventario_Ativo.xlsx"),
		LayoutPath:     getEnv("LAYOUT_PATH", ""),

		SourceKind:      strings.ToLower(getEnv("SOURCE_KIND", "file")),
		SourcePath:      getEnv("SOURCE_PATH", filepath.Join(cwd, fileName)),
		SourceOrigin:    getEnv("SOURCE_ORIGIN", ""),
		SourceFileName:  fileName,
		SourceTimeoutMs: getEnvInt("SOURCE_TIMEOUT_MS", 30000),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMailbox:  getEnv("IMAP_MAILBOX", "INBOX"),
		IMAPScanMax:  getEnvInt("IMAP_SCAN_MAX", 20),

		SyncIntervalSec: getEnvInt("SYNC_INTERVAL_SEC", 60),
		SyncAutoExport:  getEnvBool("SYNC_AUTO_EXPORT", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func (c Config) ExportPath() string {
	return filepath.Join(c.OutputDir, c.ExportFileName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
