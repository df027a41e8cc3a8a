package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"timesheet-bot/internal/adapter/sqlstore"
	"timesheet-bot/internal/migrate"
)

type dialect struct{}

func (dialect) Name() string { return migrate.MySQL }

func (dialect) EncodeTime(t time.Time) any { return t.UTC() }

// DecodeTime accepts both parseTime=true (time.Time) and raw DATETIME text.
func (dialect) DecodeTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case []byte:
		return time.ParseInLocation("2006-01-02 15:04:05.999999", string(v), time.UTC)
	case string:
		return time.ParseInLocation("2006-01-02 15:04:05.999999", v, time.UTC)
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", src)
	}
}

// Open opens a MySQL connection using the provided DSN, applies migrations
// and returns a ready store.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func Open(ctx context.Context, dsn string, log *slog.Logger, opts ...sqlstore.Option) (*sqlstore.Store, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate.Run(ctx, db, migrate.MySQL, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql migrate: %w", err)
	}
	return sqlstore.New(db, dialect{}, log, opts...), nil
}
