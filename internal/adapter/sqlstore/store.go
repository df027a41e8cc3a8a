// Package sqlstore implements ports.EntryStore on top of database/sql for
// drivers that use "?" placeholders. Driver specific packages supply a
// Dialect describing how timestamps are written and read back.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"timesheet-bot/internal/domain"
)

// Dialect adapts timestamp handling to a driver.
type Dialect interface {
	Name() string
	// EncodeTime converts a UTC timestamp into a driver argument.
	EncodeTime(t time.Time) any
	// DecodeTime converts a scanned submission_date value back into a time.
	DecodeTime(src any) (time.Time, error)
}

// Store implements ports.EntryStore.
type Store struct {
	db      *sql.DB
	dialect Dialect
	log     *slog.Logger
	loc     *time.Location
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLocation sets the location used for week and month boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps an open database. The schema must already be migrated.
func New(db *sql.DB, dialect Dialect, log *slog.Logger, opts ...Option) *Store {
	s := &Store{db: db, dialect: dialect, log: log, loc: time.Local, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DB exposes the underlying handle, e.g. for migrations.
func (s *Store) DB() *sql.DB { return s.db }

const insertEntry = `
INSERT INTO timesheet_entries
  (submission_id, user_id, username, channel_id, client_name, hours, proof_url, submission_date)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)`

const selectEntries = `
SELECT id, submission_id, user_id, username, channel_id, client_name, hours, proof_url, submission_date
FROM timesheet_entries`

// CreateEntry inserts a single entry.
func (s *Store) CreateEntry(ctx context.Context, e domain.NewEntry) (domain.Entry, error) {
	out, err := s.CreateEntries(ctx, []domain.NewEntry{e})
	if err != nil {
		return domain.Entry{}, err
	}
	return out[0], nil
}

// CreateEntries inserts all entries in one transaction; either all are
// stored or none are.
func (s *Store) CreateEntries(ctx context.Context, entries []domain.NewEntry) ([]domain.Entry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, s.wrap("begin", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		tx.Rollback()
		return nil, s.wrap("prepare insert", err)
	}
	defer stmt.Close()

	at := s.now().UTC()
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		var proof any
		if e.ProofURL != nil {
			proof = *e.ProofURL
		}
		res, err := stmt.ExecContext(ctx,
			e.SubmissionID,
			e.UserID,
			e.Username,
			e.ChannelID,
			e.ClientName,
			e.Hours,
			proof,
			s.dialect.EncodeTime(at),
		)
		if err != nil {
			tx.Rollback()
			return nil, s.wrap("insert", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, s.wrap("last insert id", err)
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
	if err := tx.Commit(); err != nil {
		return nil, s.wrap("commit", err)
	}
	s.log.Debug("stored entries", slog.String("store", s.dialect.Name()), slog.Int("count", len(out)))
	return out, nil
}

// WeeklyEntries returns entries submitted since Monday 00:00.
func (s *Store) WeeklyEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.since(ctx, domain.WeekStart(s.now().In(s.loc)))
}

// MonthlyEntries returns entries submitted since the 1st of the month.
func (s *Store) MonthlyEntries(ctx context.Context) ([]domain.Entry, error) {
	return s.since(ctx, domain.MonthStart(s.now().In(s.loc)))
}

// UserEntries returns one user's entries from the trailing window.
func (s *Store) UserEntries(ctx context.Context, userID string, withinDays int) ([]domain.Entry, error) {
	from := domain.DaysBefore(s.now().In(s.loc), withinDays)
	return s.query(ctx, selectEntries+`
WHERE user_id = ? AND submission_date >= ?
ORDER BY submission_date, id`, userID, s.dialect.EncodeTime(from.UTC()))
}

// EntriesBetween returns entries in [from, to).
func (s *Store) EntriesBetween(ctx context.Context, from, to time.Time) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+`
WHERE submission_date >= ? AND submission_date < ?
ORDER BY submission_date, id`, s.dialect.EncodeTime(from.UTC()), s.dialect.EncodeTime(to.UTC()))
}

// ChannelIDs lists distinct channels entries were submitted from.
func (s *Store) ChannelIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT channel_id FROM timesheet_entries ORDER BY channel_id`)
	if err != nil {
		return nil, s.wrap("query channels", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return nil, s.wrap("scan channel", err)
		}
		out = append(out, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("iterate channels", err)
	}
	return out, nil
}

// Close closes the underlying DB.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) since(ctx context.Context, from time.Time) ([]domain.Entry, error) {
	return s.query(ctx, selectEntries+`
WHERE submission_date >= ?
ORDER BY submission_date, id`, s.dialect.EncodeTime(from.UTC()))
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, s.wrap("query entries", err)
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		var (
			e     domain.Entry
			proof sql.NullString
			raw   any
		)
		if err := rows.Scan(&e.ID, &e.SubmissionID, &e.UserID, &e.Username, &e.ChannelID, &e.ClientName, &e.Hours, &proof, &raw); err != nil {
			return nil, s.wrap("scan entry", err)
		}
		at, err := s.dialect.DecodeTime(raw)
		if err != nil {
			return nil, s.wrap("decode submission_date", err)
		}
		e.SubmittedAt = at.In(s.loc)
		if proof.Valid {
			p := proof.String
			e.ProofURL = &p
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap("iterate entries", err)
	}
	return out, nil
}

func (s *Store) wrap(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", domain.ErrStorage, s.dialect.Name(), op, err)
}
