package utils

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	port string

	backendURL   string
	backendToken string
	displayName  string

	sqlitePath string
	location   *time.Location

	metricCollectionInterval time.Duration
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		backendURL: func() string {
			backendURL := os.Getenv("BACKEND_URL")
			if backendURL == "" {
				slog.Warn("BACKEND_URL is not set, running in demo mode with the local store")
			} else {
				slog.Debug("env", "BACKEND_URL", backendURL)
			}
			return backendURL
		}(),
		backendToken: func() string {
			backendToken := os.Getenv("BACKEND_TOKEN")
			if backendToken == "" {
				slog.Warn("BACKEND_TOKEN is not set")
				return ""
			}
			slog.Debug("env", "BACKEND_TOKEN", backendToken[0:3]+"...")
			return backendToken
		}(),
		displayName: func() string {
			displayName := os.Getenv("DISPLAY_NAME")
			if displayName == "" {
				displayName = "사용자"
			}
			slog.Debug("env", "DISPLAY_NAME", displayName)
			return displayName
		}(),

		sqlitePath: func() string {
			sqlitePath := os.Getenv("SQLITE_PATH")
			if sqlitePath == "" {
				sqlitePath = "./famcal.db"
			}
			slog.Debug("env", "SQLITE_PATH", sqlitePath)
			return sqlitePath
		}(),
		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		metricCollectionInterval: func() time.Duration {
			intervalStr := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if intervalStr == "" {
				intervalStr = "15s"
			}
			duration, err := time.ParseDuration(intervalStr)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", intervalStr, "duration", duration)
			return duration
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get BACKEND_URL env; blank means demo mode
func (c *Config) GetBackendURL() string {
	return c.backendURL
}

// Get BACKEND_TOKEN env
func (c *Config) GetBackendToken() string {
	return c.backendToken
}

// Get DISPLAY_NAME env
func (c *Config) GetDisplayName() string {
	return c.displayName
}

// Get SQLITE_PATH env
func (c *Config) GetSqlitePath() string {
	return c.sqlitePath
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get METRIC_COLLECTION_INTERVAL env
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}
