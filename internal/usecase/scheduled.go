package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"timesheet-bot/internal/blocks"
	"timesheet-bot/internal/ports"
)

// MonthlySummaryTitle heads the report sent to the manager at month end.
const MonthlySummaryTitle = "📊 Monthly Timesheet Summary"

// ScheduledUseCase holds the jobs an external or built-in scheduler triggers.
type ScheduledUseCase struct {
	Log       *slog.Logger
	Store     ports.EntryStore
	Chat      ports.ChatPlatform
	ManagerID string
}

// SendWeeklyReminder posts the reminder to every channel that ever submitted
// an entry. Individual channel failures are logged and skipped. It returns the
// number of channels reached.
func (uc *ScheduledUseCase) SendWeeklyReminder(ctx context.Context) (int, error) {
	if uc.Store == nil || uc.Chat == nil {
		return 0, errors.New("usecase not initialized: missing dependencies")
	}
	channels, err := uc.Store.ChannelIDs(ctx)
	if err != nil {
		uc.Log.Error("error sending weekly reminder", slog.String("error", err.Error()))
		return 0, fmt.Errorf("weekly reminder: %w", err)
	}

	sent := 0
	for _, ch := range channels {
		if _, err := uc.Chat.PostMessage(ctx, ch, "Time to fill your timesheet!", blocks.Reminder()); err != nil {
			uc.Log.Warn("reminder not delivered", slog.String("channel", ch), slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	uc.Log.Info("weekly reminder sent", slog.Int("channels", sent), slog.Int("known", len(channels)))
	return sent, nil
}

// SendMonthlySummary direct-messages the manager this month's report.
func (uc *ScheduledUseCase) SendMonthlySummary(ctx context.Context) error {
	if uc.Store == nil || uc.Chat == nil {
		return errors.New("usecase not initialized: missing dependencies")
	}
	if uc.ManagerID == "" {
		return errors.New("monthly summary: manager user id not configured")
	}
	entries, err := uc.Store.MonthlyEntries(ctx)
	if err != nil {
		uc.Log.Error("error sending monthly summary", slog.String("error", err.Error()))
		return fmt.Errorf("monthly summary: %w", err)
	}
	if err := uc.Chat.SendDM(ctx, uc.ManagerID, "Monthly Timesheet Summary", blocks.Report(entries, MonthlySummaryTitle)); err != nil {
		uc.Log.Error("error sending monthly summary", slog.String("error", err.Error()))
		return fmt.Errorf("monthly summary: %w", err)
	}
	uc.Log.Info("monthly summary sent to manager", slog.Int("entries", len(entries)))
	return nil
}
