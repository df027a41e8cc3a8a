package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStart(t *testing.T) {
	def := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)

	got, err := parseStart("", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = parseStart("2024-05-01", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = parseStart("2024-05-01T10:00:00Z", def)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = parseStart("yesterday", def)
	assert.Error(t, err)
}

func TestParseEnd_DateIsInclusive(t *testing.T) {
	def := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)

	got, err := parseEnd("2024-05-31", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseEnd("31/05/2024", def)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	assert.True(t, newLogger("info", "text", true).Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, newLogger("warn", "json", false).Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, newLogger("", "", false).Enabled(context.Background(), slog.LevelInfo))
}
