package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mrlokans/readingtracker/internal/scheduler"
)

type (
	Config struct {
		HTTP
		Global
		Database
		API
		Import
		Tasks
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	API struct {
		BasePath   string // Prefix of every API route, e.g. "/api"
		DemoUserID string // User id when the request carries no X-User-Id header
	}
	Import struct {
		TextsDir      string // Directory holding the plain-text book files
		TotalSegments int    // Number of segments each book is split into
		OnStart       bool   // Enqueue an import of every catalog book at boot
		Schedule      string // Cron format; empty disables scheduled re-import
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Log struct {
		Mode string // "development" or "production"
	}
)

// NewConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	v.SetDefault("api_base_path", DefaultBasePath)
	v.SetDefault("demo_user_id", DefaultDemoUserID)

	v.SetDefault("texts_dir", "./texts")
	v.SetDefault("import_total_segments", DefaultTotalSegments)
	v.SetDefault("import_on_start", false)
	v.SetDefault("import_schedule", "")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("log_mode", "development")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		API: API{
			BasePath:   normalizeBasePath(v.GetString("API_BASE_PATH")),
			DemoUserID: v.GetString("DEMO_USER_ID"),
		},
		Import: Import{
			TextsDir:      v.GetString("TEXTS_DIR"),
			TotalSegments: v.GetInt("IMPORT_TOTAL_SEGMENTS"),
			OnStart:       v.GetBool("IMPORT_ON_START"),
			Schedule:      v.GetString("IMPORT_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Log: Log{
			Mode: v.GetString("LOG_MODE"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DATABASE_PATH is required"))
	}
	if c.API.DemoUserID == "" {
		errs = append(errs, errors.New("DEMO_USER_ID must not be empty"))
	}
	if c.Import.TotalSegments < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_TOTAL_SEGMENTS must be positive, got %d", c.Import.TotalSegments))
	}
	if c.Import.Schedule != "" {
		if err := scheduler.ValidateSchedule(c.Import.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("IMPORT_SCHEDULE %q: %w", c.Import.Schedule, err))
		}
		if !c.Tasks.Enabled {
			errs = append(errs, errors.New("IMPORT_SCHEDULE requires TASKS_ENABLED"))
		}
	}
	if c.Tasks.Enabled && c.Tasks.Workers < 1 {
		errs = append(errs, fmt.Errorf("TASK_WORKERS must be positive, got %d", c.Tasks.Workers))
	}

	return errors.Join(errs...)
}

// normalizeBasePath makes "api", "/api/" and "/api" equivalent. An empty
// value or "/" mounts the API at the root.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}
