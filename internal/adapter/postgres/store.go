package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"timesheet-bot/internal/domain"
	"timesheet-bot/internal/migrate"
)

// Store implements ports.EntryStore on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
	loc  *time.Location
	now  func() time.Time
}

// Open connects to databaseURL, applies migrations and returns a ready store.
// A nil loc means time.Local; a nil now means time.Now.
func Open(ctx context.Context, databaseURL string, log *slog.Logger, loc *time.Location, now func() time.Time) (*Store, error) {
	if databaseURL == "" {
		return nil, errors.New("postgres: DATABASE_URL is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(c); err != nil {
		pool.Close()
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	err = migrate.Run(ctx, db, migrate.Postgres, log)
	db.Close()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Store{pool: pool, log: log, loc: loc, now: now}, nil
}

const selectEntries = `
SELECT id, submission_id::text, user_id, username, channel_id, client_name, hours, proof_url, submission_date
FROM timesheet_entries`

// CreateEntry inserts a single entry.
func (s *Store) CreateEntry(ctx context.Context, e domain.NewEntry) (domain.Entry, error) {
	out, err := s.CreateEntries(ctx, []domain.NewEntry{e})
	if err != nil {
		return domain.Entry{}, err
	}
	return out[0], nil
}

// CreateEntries inserts all entries in one transaction.
func (s *Store) CreateEntries(ctx context.Context, entries []domain.NewEntry) ([]domain.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, wrap("begin", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	at := s.now().UTC()
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		var id int64
		err := tx.QueryRow(ctx, `
INSERT INTO timesheet_entries
  (submission_id, user_id, username, channel_id, client_name, hours, proof_url, submission_date)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
			e.SubmissionID, e.UserID, e.Username, e.ChannelID, e.ClientName, e.Hours, e.ProofURL, at,
		).Scan(&id)
		if err != nil {
			return nil, wrap("insert", err)
		}
		out = append(out, domain.Entry{
			ID:           id,
			SubmissionID: e.SubmissionID,
			UserID:       e.UserID,
			Username:     e.Username,
			ChannelID:    e.ChannelID,
			ClientName:   e.ClientName,
			Hours:        e.Hours,
			ProofURL:     e.ProofURL,
			SubmittedAt:  at.In(s.loc),
		})
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, wrap("commit", err)
	}
	s.log.Debug("stored entries", slog.String("store", migrate.Postgres), slog.Int("count", len(out)))
	return out, nil
}

// WeeklyEntries returns entries submitted since Monday 00:00.
func (s *Store) WeeklyEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+` WHERE submission_date >= $1 ORDER BY submission_date, id`,
		domain.WeekStart(s.now().In(s.loc)))
}

// MonthlyEntries returns entries submitted since the 1st of the month.
func (s *Store) MonthlyEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+` WHERE submission_date >= $1 ORDER BY submission_date, id`,
		domain.MonthStart(s.now().In(s.loc)))
}

// UserEntries returns one user's entries from the trailing window.
func (s *Store) UserEntries(ctx context.Context, userID string, withinDays int) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+` WHERE user_id = $1 AND submission_date >= $2 ORDER BY submission_date, id`,
		userID, domain.DaysBefore(s.now().In(s.loc), withinDays))
}

// EntriesBetween returns entries in [from, to).
func (s *Store) EntriesBetween(ctx context.Context, from, to time.Time) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+` WHERE submission_date >= $1 AND submission_date < $2 ORDER BY submission_date, id`,
		from, to)
}

// ChannelIDs lists distinct channels entries were submitted from.
func (s *Store) ChannelIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT channel_id FROM timesheet_entries ORDER BY channel_id`)
	if err != nil {
		return nil, wrap("query channels", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrap("scan channels", err)
	}
	return out, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.Entry, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, wrap("query entries", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var e domain.Entry
		err := row.Scan(&e.ID, &e.SubmissionID, &e.UserID, &e.Username, &e.ChannelID, &e.ClientName, &e.Hours, &e.ProofURL, &e.SubmittedAt)
		e.SubmittedAt = e.SubmittedAt.In(s.loc)
		return e, err
	})
	if err != nil {
		return nil, wrap("scan entries", err)
	}
	return out, nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("%w: postgres %s: %w", domain.ErrStorage, op, err)
}
