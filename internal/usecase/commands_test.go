package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timesheet-bot/internal/domain"
)

const managerID = "UMANAGER"

func newCommandUseCase(store *fakeStore) *CommandUseCase {
	return &CommandUseCase{Log: discardLogger(), Store: store, ManagerID: managerID}
}

func TestCommand_TimesheetShowsPicker(t *testing.T) {
	store := newFakeStore()
	uc := newCommandUseCase(store)

	for _, user := range []string{"U1", managerID} {
		resp := uc.Handle(context.Background(), Command{Name: CommandTimesheet, UserID: user})
		assert.Equal(t, ResponseTypeEphemeral, resp.ResponseType)
		assert.Equal(t, "Fill your timesheet", resp.Text)
		assert.NotEmpty(t, resp.Blocks)
	}
	assert.Zero(t, store.totalCalls())
}

func TestCommand_ReportAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		command string
		method  string
	}{
		{"weekly", CommandWeekly, "WeeklyEntries"},
		{"monthly", CommandMonthly, "MonthlyEntries"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" denied", func(t *testing.T) {
			store := newFakeStore()
			resp := newCommandUseCase(store).Handle(context.Background(), Command{Name: tt.command, UserID: "U1"})
			assert.Equal(t, Ephemeral(PermissionDeniedText), resp)
			assert.Zero(t, store.totalCalls())
		})
		t.Run(tt.name+" allowed", func(t *testing.T) {
			store := newFakeStore()
			_, err := store.CreateEntries(context.Background(), []domain.NewEntry{{ClientName: "Acme", Hours: 2}})
			require.NoError(t, err)

			resp := newCommandUseCase(store).Handle(context.Background(), Command{Name: tt.command, UserID: managerID})
			assert.Equal(t, ResponseTypeEphemeral, resp.ResponseType)
			require.NotEmpty(t, resp.Blocks)
			assert.Equal(t, 1, store.calls[tt.method])
		})
	}
}

func TestCommand_ReportWithoutManagerConfigured(t *testing.T) {
	store := newFakeStore()
	uc := &CommandUseCase{Log: discardLogger(), Store: store}
	resp := uc.Handle(context.Background(), Command{Name: CommandWeekly, UserID: ""})
	assert.Equal(t, PermissionDeniedText, resp.Text)
	assert.Zero(t, store.totalCalls())
}

func TestCommand_ReportStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	resp := newCommandUseCase(store).Handle(context.Background(), Command{Name: CommandMonthly, UserID: managerID})
	assert.Equal(t, ResponseTypeEphemeral, resp.ResponseType)
	assert.Contains(t, resp.Text, "Could not load the report")
	assert.Empty(t, resp.Blocks)
}

func TestCommand_Mine(t *testing.T) {
	store := newFakeStore()
	_, err := store.CreateEntries(context.Background(), []domain.NewEntry{
		{UserID: "U1", ClientName: "Acme", Hours: 2},
		{UserID: "U2", ClientName: "Globex", Hours: 5},
	})
	require.NoError(t, err)

	resp := newCommandUseCase(store).Handle(context.Background(), Command{Name: CommandMine, UserID: "U1", Text: "30"})
	assert.Equal(t, ResponseTypeEphemeral, resp.ResponseType)
	assert.Equal(t, 1, store.calls["UserEntries"])
	// header, divider, one entry (3 blocks), total
	assert.Len(t, resp.Blocks, 6)
}

func TestCommand_Unknown(t *testing.T) {
	resp := newCommandUseCase(newFakeStore()).Handle(context.Background(), Command{Name: "nope"})
	assert.Equal(t, Ephemeral("Unknown command"), resp)
}
