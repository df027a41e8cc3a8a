package app

import (
	"context"
	"fmt"
	"log/slog"

	msql "timesheet-bot/internal/adapter/mysql"
	pg "timesheet-bot/internal/adapter/postgres"
	slk "timesheet-bot/internal/adapter/slack"
	"timesheet-bot/internal/adapter/sqlite"
	"timesheet-bot/internal/adapter/sqlstore"
	"timesheet-bot/internal/config"
	"timesheet-bot/internal/ports"
	"timesheet-bot/internal/signature"
	"timesheet-bot/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log      *slog.Logger
	store    ports.EntryStore
	verifier *signature.Verifier

	commands     *usecase.CommandUseCase
	interactions *usecase.InteractionUseCase
	scheduled    *usecase.ScheduledUseCase
}

// New opens the configured store (running migrations) and the Slack client.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	store, err := OpenStore(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	chat := slk.NewClient(cfg.Slack.BotToken, cfg.Slack.APIURL, log)
	return NewWithDeps(log, cfg, store, chat), nil
}

// NewWithDeps wires the app around already constructed collaborators.
func NewWithDeps(log *slog.Logger, cfg config.Config, store ports.EntryStore, chat ports.ChatPlatform, opts ...signature.Option) *App {
	return &App{
		log:      log,
		store:    store,
		verifier: signature.NewVerifier(cfg.Slack.SigningSecret, opts...),
		commands: &usecase.CommandUseCase{
			Log:       log.With(slog.String("component", "commands")),
			Store:     store,
			ManagerID: cfg.Slack.ManagerUserID,
		},
		interactions: &usecase.InteractionUseCase{
			Log:   log.With(slog.String("component", "interactions")),
			Store: store,
			Chat:  chat,
		},
		scheduled: &usecase.ScheduledUseCase{
			Log:       log.With(slog.String("component", "scheduled")),
			Store:     store,
			Chat:      chat,
			ManagerID: cfg.Slack.ManagerUserID,
		},
	}
}

// OpenStore opens the entry store selected by STORE_DRIVER.
func OpenStore(ctx context.Context, log *slog.Logger, cfg config.Config) (ports.EntryStore, error) {
	loc := cfg.StoreLocation()
	log.Info("opening entry store", slog.String("driver", cfg.Store.Driver), slog.String("tz", loc.String()))
	var (
		store ports.EntryStore
		err   error
	)
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		store, err = openAs(msql.Open(ctx, cfg.Store.MySQLDSN, log, sqlstore.WithLocation(loc)))
	case config.DriverSQLite:
		store, err = openAs(sqlite.Open(ctx, cfg.Store.SQLitePath, log, sqlstore.WithLocation(loc)))
	case config.DriverPostgres:
		store, err = openAs(pg.Open(ctx, cfg.Store.PostgresURL, log, loc, nil))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	return store, nil
}

// openAs keeps a typed nil from leaking into a non-nil interface.
func openAs[S ports.EntryStore](s S, err error) (ports.EntryStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Store exposes the entry store, e.g. for exports.
func (a *App) Store() ports.EntryStore { return a.store }

// SendWeeklyReminder runs the weekly reminder job once.
func (a *App) SendWeeklyReminder(ctx context.Context) error {
	_, err := a.scheduled.SendWeeklyReminder(ctx)
	return err
}

// SendMonthlySummary runs the monthly summary job once.
func (a *App) SendMonthlySummary(ctx context.Context) error {
	return a.scheduled.SendMonthlySummary(ctx)
}

// Close releases the store.
func (a *App) Close() error { return a.store.Close() }
