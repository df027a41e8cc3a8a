package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func base() map[string]string {
	return map[string]string{
		"SLACK_SIGNING_SECRET":  "secret",
		"SLACK_BOT_TOKEN":       "xoxb-1",
		"SLACK_MANAGER_USER_ID": "UMGR",
		"MYSQL_DSN":             "u:p@tcp(db:3306)/ts?parseTime=true",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv(env(base()))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Slack.SigningSecret)
	assert.Equal(t, "UMGR", cfg.Slack.ManagerUserID)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DriverMySQL, cfg.Store.Driver)
	assert.Equal(t, "timesheet.db", cfg.Store.SQLitePath)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestFromEnv_Required(t *testing.T) {
	for _, key := range []string{"SLACK_SIGNING_SECRET", "SLACK_BOT_TOKEN", "SLACK_MANAGER_USER_ID", "MYSQL_DSN"} {
		t.Run(key, func(t *testing.T) {
			m := base()
			delete(m, key)
			_, err := fromEnv(env(m))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestFromEnv_Drivers(t *testing.T) {
	m := base()
	m["STORE_DRIVER"] = "SQLite"
	m["SQLITE_PATH"] = "/tmp/ts.db"
	cfg, err := fromEnv(env(m))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/ts.db", cfg.Store.SQLitePath)

	m["STORE_DRIVER"] = "postgres"
	_, err = fromEnv(env(m))
	assert.ErrorContains(t, err, "DATABASE_URL")

	m["STORE_DRIVER"] = "oracle"
	_, err = fromEnv(env(m))
	assert.ErrorContains(t, err, "not supported")
}

func TestFromEnv_Scheduler(t *testing.T) {
	m := base()
	m["SCHEDULER_ENABLED"] = "false"
	m["SCHEDULE_TZ"] = "Europe/Berlin"
	cfg, err := fromEnv(env(m))
	require.NoError(t, err)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "Europe/Berlin", cfg.ScheduleLocation().String())

	m["SCHEDULER_ENABLED"] = "sometimes"
	_, err = fromEnv(env(m))
	assert.Error(t, err)

	m["SCHEDULER_ENABLED"] = "true"
	m["SCHEDULE_TZ"] = "Mars/Olympus"
	_, err = fromEnv(env(m))
	assert.ErrorContains(t, err, "SCHEDULE_TZ")
}
