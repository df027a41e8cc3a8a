package ports

import (
	"context"
	"time"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/domain"
)

// EntryStore persists timesheet entries. Entries are append-only.
type EntryStore interface {
	CreateEntry(ctx context.Context, e domain.NewEntry) (domain.Entry, error)
	// CreateEntries inserts all entries in a single transaction.
	CreateEntries(ctx context.Context, entries []domain.NewEntry) ([]domain.Entry, error)
	WeeklyEntries(ctx context.Context) ([]domain.Entry, error)
	MonthlyEntries(ctx context.Context) ([]domain.Entry, error)
	UserEntries(ctx context.Context, userID string, withinDays int) ([]domain.Entry, error)
	EntriesBetween(ctx context.Context, from, to time.Time) ([]domain.Entry, error)
	// ChannelIDs lists every distinct channel an entry was submitted from.
	ChannelIDs(ctx context.Context) ([]string, error)
	Close() error
}

// ChatPlatform is the outbound surface of the chat platform the bot talks to.
type ChatPlatform interface {
	PostMessage(ctx context.Context, channelID, text string, blocks []slack.Block) (string, error)
	UpdateMessage(ctx context.Context, channelID, ts, text string, blocks []slack.Block) error
	SendDM(ctx context.Context, userID, text string, blocks []slack.Block) error
	OpenModal(ctx context.Context, triggerID, title string, blocks []slack.Block) error
	FileURL(ctx context.Context, fileID string) (string, error)
	ChannelMembers(ctx context.Context, channelID string) ([]string, error)
	UserInfo(ctx context.Context, userID string) (domain.User, error)
}
