package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"timesheet-bot/internal/app"
	"timesheet-bot/internal/domain"
	"timesheet-bot/internal/export"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Post the weekly reminder to every known channel once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.SendWeeklyReminder(ctx)
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Send this month's summary to the manager once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			return a.SendMonthlySummary(ctx)
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		store, err := app.OpenStore(cmd.Context(), logger, cfg)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.String("driver", cfg.Store.Driver))
		return store.Close()
	},
}

var (
	exportPeriod string
	exportFrom   string
	exportTo     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write entries of a period to an xlsx workbook",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportPeriod, "period", "month", "Period: week, month or range (uses --from/--to)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "RFC3339 or YYYY-MM-DD start (range only)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "RFC3339 or YYYY-MM-DD end, date-only is inclusive (range only)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default timesheet-<period>-<date>.xlsx)")
}

// withApp runs fn against a fully wired app and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App) error) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()
	return fn(ctx, a)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	store, err := app.OpenStore(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var (
		entries []domain.Entry
		title   string
	)
	now := time.Now().In(cfg.StoreLocation())
	switch exportPeriod {
	case "week":
		title = "Weekly Timesheet Report"
		entries, err = store.WeeklyEntries(ctx)
	case "month":
		title = "Monthly Timesheet Report"
		entries, err = store.MonthlyEntries(ctx)
	case "range":
		to, perr := parseEnd(exportTo, now)
		if perr != nil {
			return perr
		}
		from, perr := parseStart(exportFrom, to.AddDate(0, 0, -7))
		if perr != nil {
			return perr
		}
		title = fmt.Sprintf("Timesheet %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
		entries, err = store.EntriesBetween(ctx, from, to)
	default:
		return fmt.Errorf("unknown --period %q, expected week, month or range", exportPeriod)
	}
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = fmt.Sprintf("timesheet-%s-%s.xlsx", exportPeriod, now.Format("2006-01-02"))
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(f, title, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("export written", slog.String("file", out), slog.Int("entries", len(entries)))
	return nil
}

// parseStart parses a start boundary that may be RFC3339 or YYYY-MM-DD.
// If empty, defaultVal is returned.
func parseStart(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, defaultVal.Location()); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid --from %q, expected RFC3339 or YYYY-MM-DD", val)
}

// parseEnd parses an end boundary that may be RFC3339 or YYYY-MM-DD.
// Date-only form is treated as inclusive by converting to next-day 00:00.
// If empty, defaultVal is returned.
func parseEnd(val string, defaultVal time.Time) (time.Time, error) {
	if val == "" {
		return defaultVal, nil
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}
	if d, err := time.ParseInLocation("2006-01-02", val, defaultVal.Location()); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	return time.Time{}, fmt.Errorf("invalid --to %q, expected RFC3339 or YYYY-MM-DD", val)
}
