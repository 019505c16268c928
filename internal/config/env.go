// Package config reads process-level configuration from the environment.
//
// User-editable settings (page size, margins, sort order) live in the TOML
// config file handled by the ConfigStore adapter. This package only covers
// where that file lives and how the process logs.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHome          = "ZIP2PDF_HOME"
	EnvInbox         = "ZIP2PDF_INBOX"
	EnvLogLevel      = "ZIP2PDF_LOG_LEVEL"
	EnvLogFile       = "ZIP2PDF_LOG_FILE"
	EnvLogPretty     = "ZIP2PDF_LOG_PRETTY"
	EnvLogMaxSizeMB  = "ZIP2PDF_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "ZIP2PDF_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "ZIP2PDF_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = "ZIP2PDF_LOG_COMPRESS"
)

const defaultHomeDir = ".zip2pdf"

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config is the top-level process configuration.
type Config struct {
	// Home is the state directory holding config.toml, the session
	// database and staging areas.
	Home string

	// Inbox is the default drop directory watched by the TUI.
	Inbox string

	Logging LoggingConfig
}

// StagingRoot returns the directory under which session staging areas live.
func (c Config) StagingRoot() string {
	return filepath.Join(c.Home, "staging")
}

// LoadDotEnv loads variables from the given .env files. Missing files are
// skipped and variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
	cfg := Config{
		Home:  getEnv(EnvHome, defaultHome()),
		Inbox: getEnv(EnvInbox, ""),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnv(EnvLogLevel, "info"),
		Pretty:     parseBool(getEnv(EnvLogPretty, "false")),
		File:       getEnv(EnvLogFile, ""),
		MaxSizeMB:  parseInt(getEnv(EnvLogMaxSizeMB, "10"), 10),
		MaxBackups: parseInt(getEnv(EnvLogMaxBackups, "3"), 3),
		MaxAgeDays: parseInt(getEnv(EnvLogMaxAgeDays, "28"), 28),
		Compress:   parseBool(getEnv(EnvLogCompress, "false")),
	}

	return cfg
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), defaultHomeDir)
	}
	return filepath.Join(home, defaultHomeDir)
}

// Helpers
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
