package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds environment-driven configuration.
type Config struct {
	Slack struct {
		SigningSecret string
		BotToken      string
		ManagerUserID string // the only identity allowed to request reports
		APIURL        string // optional override, e.g. for a local mock
	}
	HTTP struct {
		Addr string // default: :8080
	}
	Store struct {
		Driver      string // mysql (default), sqlite, postgres
		MySQLDSN    string // e.g., user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
		SQLitePath  string
		PostgresURL string
		Timezone    string // week/month boundaries are computed here; default Local
	}
	Scheduler struct {
		Enabled  bool
		Timezone string // default Local
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // text (default) or json
	}
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real env vars win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	var cfg Config

	cfg.Slack.SigningSecret = getenv("SLACK_SIGNING_SECRET")
	if cfg.Slack.SigningSecret == "" {
		return cfg, errors.New("SLACK_SIGNING_SECRET is required")
	}
	cfg.Slack.BotToken = getenv("SLACK_BOT_TOKEN")
	if cfg.Slack.BotToken == "" {
		return cfg, errors.New("SLACK_BOT_TOKEN is required")
	}
	cfg.Slack.ManagerUserID = getenv("SLACK_MANAGER_USER_ID")
	if cfg.Slack.ManagerUserID == "" {
		return cfg, errors.New("SLACK_MANAGER_USER_ID is required")
	}
	cfg.Slack.APIURL = getenv("SLACK_API_URL")

	cfg.HTTP.Addr = or(getenv("HTTP_ADDR"), ":8080")

	cfg.Store.Driver = strings.ToLower(or(getenv("STORE_DRIVER"), DriverMySQL))
	cfg.Store.MySQLDSN = getenv("MYSQL_DSN")
	cfg.Store.SQLitePath = or(getenv("SQLITE_PATH"), "timesheet.db")
	cfg.Store.PostgresURL = getenv("DATABASE_URL")
	cfg.Store.Timezone = or(getenv("STORE_TZ"), "Local")
	switch cfg.Store.Driver {
	case DriverMySQL:
		if cfg.Store.MySQLDSN == "" {
			return cfg, errors.New("MYSQL_DSN is required when STORE_DRIVER=mysql")
		}
	case DriverPostgres:
		if cfg.Store.PostgresURL == "" {
			return cfg, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	case DriverSQLite:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER %q is not supported", cfg.Store.Driver)
	}
	if _, err := time.LoadLocation(cfg.Store.Timezone); err != nil {
		return cfg, fmt.Errorf("STORE_TZ: %w", err)
	}

	cfg.Scheduler.Enabled = true
	if v := getenv("SCHEDULER_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, errors.New("SCHEDULER_ENABLED must be a boolean")
		}
		cfg.Scheduler.Enabled = b
	}
	cfg.Scheduler.Timezone = or(getenv("SCHEDULE_TZ"), "Local")
	if _, err := time.LoadLocation(cfg.Scheduler.Timezone); err != nil {
		return cfg, fmt.Errorf("SCHEDULE_TZ: %w", err)
	}

	cfg.Log.Level = strings.ToLower(or(getenv("LOG_LEVEL"), "info"))
	cfg.Log.Format = strings.ToLower(or(getenv("LOG_FORMAT"), "text"))

	return cfg, nil
}

// StoreLocation returns the location report windows are computed in.
func (c Config) StoreLocation() *time.Location {
	loc, err := time.LoadLocation(c.Store.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ScheduleLocation returns the location scheduled jobs fire in.
func (c Config) ScheduleLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
