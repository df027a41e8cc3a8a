package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"timesheet-bot/internal/blocks"
	"timesheet-bot/internal/domain"
	"timesheet-bot/internal/ports"
)

// Slash command names, as routed under /commands/{name}.
const (
	CommandTimesheet = "timesheet"
	CommandWeekly    = "timesheetWeekly"
	CommandMonthly   = "timesheetMonthly"
	CommandMine      = "timesheetMine"
)

const (
	PermissionDeniedText = "⚠️ You don't have permission to view reports."
	WeeklyReportTitle    = "📊 Weekly Timesheet Report"
	MonthlyReportTitle   = "📊 Monthly Timesheet Report"
)

// Command is a decoded slash-command invocation.
type Command struct {
	Name      string
	UserID    string
	UserName  string
	ChannelID string
	Text      string
	TriggerID string
}

// CommandUseCase answers slash commands. Reports are restricted to ManagerID.
type CommandUseCase struct {
	Log       *slog.Logger
	Store     ports.EntryStore
	ManagerID string
}

func (uc *CommandUseCase) Handle(ctx context.Context, cmd Command) Response {
	uc.Log.Info("handling command",
		slog.String("command", cmd.Name),
		slog.String("user", cmd.UserID),
		slog.String("channel", cmd.ChannelID),
	)
	switch cmd.Name {
	case CommandTimesheet:
		return Response{
			ResponseType: ResponseTypeEphemeral,
			Text:         "Fill your timesheet",
			Blocks:       blocks.Render(blocks.InitialPickerSpec{}),
		}
	case CommandWeekly:
		return uc.report(ctx, cmd, WeeklyReportTitle, "Weekly Report", uc.Store.WeeklyEntries)
	case CommandMonthly:
		return uc.report(ctx, cmd, MonthlyReportTitle, "Monthly Report", uc.Store.MonthlyEntries)
	case CommandMine:
		return uc.mine(ctx, cmd)
	}
	uc.Log.Warn("unknown command", slog.String("command", cmd.Name))
	return Ephemeral("Unknown command")
}

func (uc *CommandUseCase) report(ctx context.Context, cmd Command, title, fallback string, load func(context.Context) ([]domain.Entry, error)) Response {
	if uc.ManagerID == "" || cmd.UserID != uc.ManagerID {
		uc.Log.Info("report denied", slog.String("command", cmd.Name), slog.String("user", cmd.UserID))
		return Ephemeral(PermissionDeniedText)
	}
	entries, err := load(ctx)
	if err != nil {
		uc.Log.Error("failed to load report", slog.String("command", cmd.Name), slog.String("error", err.Error()))
		return Ephemeral("❌ Could not load the report right now. Please try again.")
	}
	return Response{
		ResponseType: ResponseTypeEphemeral,
		Text:         fallback,
		Blocks:       blocks.Render(blocks.ReportSpec{Title: title, Entries: entries}),
	}
}

// mine shows the caller their own entries; Text may carry a day window.
func (uc *CommandUseCase) mine(ctx context.Context, cmd Command) Response {
	days := domain.DefaultUserWindowDays
	if n, err := strconv.Atoi(strings.TrimSpace(cmd.Text)); err == nil && n > 0 {
		days = n
	}
	entries, err := uc.Store.UserEntries(ctx, cmd.UserID, days)
	if err != nil {
		uc.Log.Error("failed to load user entries", slog.String("user", cmd.UserID), slog.String("error", err.Error()))
		return Ephemeral("❌ Could not load your entries right now. Please try again.")
	}
	title := fmt.Sprintf("🗂 Your Timesheet Entries (last %d days)", days)
	return Response{
		ResponseType: ResponseTypeEphemeral,
		Text:         "Your entries",
		Blocks:       blocks.Report(entries, title),
	}
}
