package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"timesheet-bot/internal/adapter/sqlstore"
	"timesheet-bot/internal/migrate"
)

// timeLayout is fixed width so lexicographic order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type dialect struct{}

func (dialect) Name() string { return migrate.SQLite }

func (dialect) EncodeTime(t time.Time) any { return t.UTC().Format(timeLayout) }

func (dialect) DecodeTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", src)
	}
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Open opens (or creates) the database file at path, applies migrations and
// returns a ready store. Use ":memory:" only with a single connection.
func Open(ctx context.Context, path string, log *slog.Logger, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if err := migrate.Run(ctx, db, migrate.SQLite, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite migrate: %w", err)
	}
	return sqlstore.New(db, dialect{}, log, opts...), nil
}
