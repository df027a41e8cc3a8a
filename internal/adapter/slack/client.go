package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/blocks"
	"timesheet-bot/internal/domain"
)

// Client implements ports.ChatPlatform using the Slack Web API.
type Client struct {
	api *slack.Client
	log *slog.Logger
}

// NewClient builds a Web API client for botToken. An empty apiURL uses
// Slack's production endpoint; the value must end with a slash.
func NewClient(botToken, apiURL string, log *slog.Logger) *Client {
	opts := []slack.Option{
		slack.OptionHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &Client{api: slack.New(botToken, opts...), log: log}
}

// PostMessage posts to a channel and returns the message timestamp.
func (c *Client) PostMessage(ctx context.Context, channelID, text string, blks []slack.Block) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blks...),
	)
	if err != nil {
		return "", fmt.Errorf("slack: post message to %s: %w", channelID, err)
	}
	c.log.Debug("posted message", slog.String("channel", channelID), slog.String("ts", ts))
	return ts, nil
}

// UpdateMessage replaces the content of an existing message.
func (c *Client) UpdateMessage(ctx context.Context, channelID, ts, text string, blks []slack.Block) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, channelID, ts,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(blks...),
	)
	if err != nil {
		return fmt.Errorf("slack: update message %s/%s: %w", channelID, ts, err)
	}
	return nil
}

// SendDM opens (or reuses) a direct conversation with userID and posts to it.
func (c *Client) SendDM(ctx context.Context, userID, text string, blks []slack.Block) error {
	if userID == "" {
		return errors.New("slack: empty user id for direct message")
	}
	ch, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{Users: []string{userID}})
	if err != nil {
		return fmt.Errorf("slack: open conversation with %s: %w", userID, err)
	}
	_, err = c.PostMessage(ctx, ch.ID, text, blks)
	return err
}

// OpenModal opens a modal with a submit button for the given trigger.
func (c *Client) OpenModal(ctx context.Context, triggerID, title string, blks []slack.Block) error {
	view := slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: blocks.ModalCallbackID,
		Title:      slack.NewTextBlockObject(slack.PlainTextType, title, false, false),
		Submit:     slack.NewTextBlockObject(slack.PlainTextType, "Submit", false, false),
		Close:      slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		Blocks:     slack.Blocks{BlockSet: blks},
	}
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("slack: open modal: %w", err)
	}
	return nil
}

// FileURL resolves an uploaded file id to its private download URL.
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	f, _, _, err := c.api.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		return "", fmt.Errorf("slack: file info %s: %w", fileID, err)
	}
	return f.URLPrivate, nil
}

// ChannelMembers lists every member id of a channel, following pagination.
func (c *Client) ChannelMembers(ctx context.Context, channelID string) ([]string, error) {
	var (
		members []string
		cursor  string
	)
	for {
		page, next, err := c.api.GetUsersInConversationContext(ctx, &slack.GetUsersInConversationParameters{
			ChannelID: channelID,
			Cursor:    cursor,
			Limit:     200,
		})
		if err != nil {
			return nil, fmt.Errorf("slack: members of %s: %w", channelID, err)
		}
		members = append(members, page...)
		if next == "" {
			return members, nil
		}
		cursor = next
	}
}

// UserInfo fetches a user's profile.
func (c *Client) UserInfo(ctx context.Context, userID string) (domain.User, error) {
	u, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("slack: user info %s: %w", userID, err)
	}
	return domain.User{ID: u.ID, Name: u.Name, RealName: u.RealName, IsBot: u.IsBot}, nil
}
