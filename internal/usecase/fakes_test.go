package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory EntryStore that counts every call.
type fakeStore struct {
	mu       sync.Mutex
	entries  []domain.Entry
	channels []string
	calls    map[string]int
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{calls: make(map[string]int)}
}

func (s *fakeStore) record(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
	return s.err
}

func (s *fakeStore) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *fakeStore) CreateEntry(ctx context.Context, e domain.NewEntry) (domain.Entry, error) {
	out, err := s.CreateEntries(ctx, []domain.NewEntry{e})
	if err != nil {
		return domain.Entry{}, err
	}
	return out[0], nil
}

func (s *fakeStore) CreateEntries(_ context.Context, news []domain.NewEntry) ([]domain.Entry, error) {
	if err := s.record("CreateEntries"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Entry, 0, len(news))
	for _, n := range news {
		e := domain.Entry{
			ID:           int64(len(s.entries) + 1),
			SubmissionID: n.SubmissionID,
			UserID:       n.UserID,
			Username:     n.Username,
			ChannelID:    n.ChannelID,
			ClientName:   n.ClientName,
			Hours:        n.Hours,
			ProofURL:     n.ProofURL,
			SubmittedAt:  time.Now(),
		}
		s.entries = append(s.entries, e)
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStore) WeeklyEntries(context.Context) ([]domain.Entry, error) {
	if err := s.record("WeeklyEntries"); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *fakeStore) MonthlyEntries(context.Context) ([]domain.Entry, error) {
	if err := s.record("MonthlyEntries"); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *fakeStore) UserEntries(_ context.Context, userID string, _ int) ([]domain.Entry, error) {
	if err := s.record("UserEntries"); err != nil {
		return nil, err
	}
	var out []domain.Entry
	for _, e := range s.snapshot() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) EntriesBetween(context.Context, time.Time, time.Time) ([]domain.Entry, error) {
	if err := s.record("EntriesBetween"); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *fakeStore) ChannelIDs(context.Context) ([]string, error) {
	if err := s.record("ChannelIDs"); err != nil {
		return nil, err
	}
	return s.channels, nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) snapshot() []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Entry(nil), s.entries...)
}

type sentMessage struct {
	Target string
	TS     string
	Text   string
	Blocks []slack.Block
}

// fakeChat records outbound calls.
type fakeChat struct {
	mu       sync.Mutex
	posts    []sentMessage
	updates  []sentMessage
	dms      []sentMessage
	modals   []sentMessage
	files    map[string]string
	failPost map[string]bool
	err      error
}

func newFakeChat() *fakeChat {
	return &fakeChat{files: map[string]string{}, failPost: map[string]bool{}}
}

func (c *fakeChat) PostMessage(_ context.Context, channelID, text string, blocks []slack.Block) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failPost[channelID] {
		return "", errors.New("channel_not_found")
	}
	c.posts = append(c.posts, sentMessage{Target: channelID, Text: text, Blocks: blocks})
	return "1700000000.000100", nil
}

func (c *fakeChat) UpdateMessage(_ context.Context, channelID, ts, text string, blocks []slack.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, sentMessage{Target: channelID, TS: ts, Text: text, Blocks: blocks})
	return c.err
}

func (c *fakeChat) SendDM(_ context.Context, userID, text string, blocks []slack.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dms = append(c.dms, sentMessage{Target: userID, Text: text, Blocks: blocks})
	return c.err
}

func (c *fakeChat) OpenModal(_ context.Context, triggerID, title string, blocks []slack.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modals = append(c.modals, sentMessage{Target: triggerID, Text: title, Blocks: blocks})
	return c.err
}

func (c *fakeChat) FileURL(_ context.Context, fileID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	url, ok := c.files[fileID]
	if !ok {
		return "", errors.New("file_not_found")
	}
	return url, nil
}

func (c *fakeChat) ChannelMembers(context.Context, string) ([]string, error) { return nil, nil }

func (c *fakeChat) UserInfo(_ context.Context, userID string) (domain.User, error) {
	return domain.User{ID: userID}, nil
}
