// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/j-veylop/gasflow-dashboard-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	BaseURL         string
	CatalogPath     string
	FromDate        models.CalendarDate
	Timezone        string
	HTTPTimeout     time.Duration
	CacheTTL        time.Duration
	RefreshSchedule string
	ExportDir       string
	LogFile         string
	LogLevel        string
	Notify          bool
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	from, err := getEnvDate("FROM_DATE", defaultFromDate)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:         getEnvString("ENTSOG_BASE_URL", defaultBaseURL),
		CatalogPath:     getEnvString("CATALOG_PATH", getDefaultCatalogPath()),
		FromDate:        from,
		Timezone:        getEnvString("TIMEZONE", defaultTimezone),
		HTTPTimeout:     getEnvDuration("HTTP_TIMEOUT", defaultHTTPTimeout),
		CacheTTL:        getEnvDuration("CACHE_TTL", defaultCacheTTL),
		RefreshSchedule: getEnvOptional("REFRESH_SCHEDULE", defaultRefreshSchedule),
		ExportDir:       getEnvString("EXPORT_DIR", getDefaultExportDir()),
		LogFile:         getEnvString("LOG_FILE", getDefaultLogFile()),
		LogLevel:        getEnvString("LOG_LEVEL", defaultLogLevel),
		Notify:          getEnvBool("NOTIFY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted silently.
func (c *Config) Validate() error {
	if c.Timezone == "" {
		return fmt.Errorf("TIMEZONE must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	if c.FromDate.Time().After(time.Now()) {
		return fmt.Errorf("FROM_DATE %s is in the future", c.FromDate)
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", c.RefreshSchedule, err)
		}
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDir, ".env"),
			filepath.Join(home, "."+appDir, ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// configDir returns ~/.config/gasflow, or "" without a home directory.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir)
}

// getDefaultCatalogPath returns the user's catalog file if one exists.
// An empty result selects the embedded catalog.
func getDefaultCatalogPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, catalogFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// getDefaultExportDir returns the default directory for exported files.
func getDefaultExportDir() string {
	dir := configDir()
	if dir == "" {
		return "exports"
	}
	return filepath.Join(dir, "exports")
}

// getDefaultLogFile returns the default log file path.
func getDefaultLogFile() string {
	dir := configDir()
	if dir == "" {
		return appDir + ".log"
	}
	return filepath.Join(dir, appDir+".log")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOptional is like getEnvString but keeps an explicitly empty value,
// which turns the feature off.
func getEnvOptional(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the values understood by strconv.ParseBool plus yes/no and on/off.
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvDate retrieves a YYYY-MM-DD environment variable or returns the default.
// Unlike the other helpers a malformed value is an error.
func getEnvDate(key, defaultValue string) (models.CalendarDate, error) {
	d, err := models.ParseCalendarDate(getEnvString(key, defaultValue))
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
