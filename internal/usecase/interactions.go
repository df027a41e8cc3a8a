package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"timesheet-bot/internal/blocks"
	"timesheet-bot/internal/domain"
	"timesheet-bot/internal/interaction"
	"timesheet-bot/internal/ports"
)

const (
	// unknownChannel is stored when a submission carries no channel (modals).
	unknownChannel = "unknown"
	modalTitle     = "Weekly Timesheet"
)

// InteractionUseCase dispatches block actions and modal submissions.
type InteractionUseCase struct {
	Log   *slog.Logger
	Store ports.EntryStore
	Chat  ports.ChatPlatform
	// NewID generates submission ids; uuid.NewString when nil.
	NewID func() string
}

// Handle dispatches on the interaction kind and, for block actions, on the
// action id. It always returns a response; panics are recovered per path.
func (uc *InteractionUseCase) Handle(ctx context.Context, p interaction.Payload) Response {
	uc.Log.Info("handling interaction",
		slog.String("kind", string(p.Kind)),
		slog.String("action", p.ActionID),
		slog.String("user", p.User.ID),
	)
	switch p.Kind {
	case interaction.KindBlockActions:
		switch p.ActionID {
		case blocks.ShowFormsActionID:
			return uc.guard(ephemeralError, func() Response { return uc.showForms(p) })
		case blocks.EntryCountActionID:
			uc.Log.Debug("entry count changed, nothing to do")
			return Response{}
		case blocks.SubmitActionID:
			return uc.guard(submissionError, func() Response { return uc.submitFromMessage(ctx, p) })
		case blocks.OpenModalActionID:
			return uc.guard(ephemeralError, func() Response { return uc.openModal(ctx, p) })
		}
		uc.Log.Warn("unknown action", slog.String("action", p.ActionID))
		return Response{Text: "Unknown action"}
	case interaction.KindViewSubmission:
		return uc.guard(submissionError, func() Response { return uc.submitFromModal(ctx, p) })
	}
	uc.Log.Info("ignoring interaction", slog.String("type", p.RawType))
	return StatusOK()
}

func (uc *InteractionUseCase) showForms(p interaction.Payload) Response {
	uc.Log.Info("building entry forms", slog.Int("count", p.EntryCount))
	return Response{
		ResponseType:    ResponseTypeEphemeral,
		ReplaceOriginal: true,
		Blocks:          blocks.Render(blocks.EntryFormSpec{Count: p.EntryCount}),
	}
}

func (uc *InteractionUseCase) openModal(ctx context.Context, p interaction.Payload) Response {
	if err := uc.Chat.OpenModal(ctx, p.TriggerID, modalTitle, blocks.ModalEntryForm(blocks.MaxEntries)); err != nil {
		return ephemeralError(err)
	}
	return Response{}
}

// submitFromMessage handles the submit button of the in-message form.
func (uc *InteractionUseCase) submitFromMessage(ctx context.Context, p interaction.Payload) Response {
	stored, err := uc.persist(ctx, p, true)
	if err != nil {
		uc.Log.Error("error submitting timesheet", slog.String("user", p.User.ID), slog.String("error", err.Error()))
		return submissionError(err)
	}
	uc.confirm(ctx, p.User.ID, stored)

	if p.ChannelID != "" && p.MessageTS != "" {
		if err := uc.Chat.UpdateMessage(ctx, p.ChannelID, p.MessageTS, "Timesheet submitted", blocks.Submitted()); err != nil {
			uc.Log.Error("failed to update submitted form", slog.String("channel", p.ChannelID), slog.String("error", err.Error()))
		}
	}
	return Response{
		ReplaceOriginal: true,
		Text:            "Timesheet submitted",
		Blocks:          blocks.Submitted(),
	}
}

// submitFromModal handles a view submission. Modals have no proof input.
func (uc *InteractionUseCase) submitFromModal(ctx context.Context, p interaction.Payload) Response {
	stored, err := uc.persist(ctx, p, false)
	if err != nil {
		uc.Log.Error("error submitting timesheet modal", slog.String("user", p.User.ID), slog.String("error", err.Error()))
		return submissionError(err)
	}
	uc.confirm(ctx, p.User.ID, stored)
	return Response{ResponseAction: ResponseActionClear}
}

// persist scans the submission and stores every entry in one transaction.
func (uc *InteractionUseCase) persist(ctx context.Context, p interaction.Payload, withProof bool) ([]domain.Entry, error) {
	inputs, err := p.Submission()
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		uc.Log.Warn("submission without entries", slog.String("user", p.User.ID))
		return nil, nil
	}

	channelID := p.ChannelID
	if channelID == "" {
		channelID = unknownChannel
	}
	submissionID := uc.newID()
	news := make([]domain.NewEntry, 0, len(inputs))
	for _, in := range inputs {
		var proof *string
		if withProof && in.ProofFileID != "" {
			proof = uc.resolveProof(ctx, in.ProofFileID)
		}
		news = append(news, domain.NewEntry{
			SubmissionID: submissionID,
			UserID:       p.User.ID,
			Username:     p.User.Username,
			ChannelID:    channelID,
			ClientName:   in.ClientName,
			Hours:        in.Hours,
			ProofURL:     proof,
		})
	}

	stored, err := uc.Store.CreateEntries(ctx, news)
	if err != nil {
		return nil, err
	}
	uc.Log.Info("stored submission",
		slog.String("submission", submissionID),
		slog.String("user", p.User.ID),
		slog.Int("entries", len(stored)),
	)
	return stored, nil
}

// resolveProof turns an uploaded file id into a durable URL. Lookup failures
// leave the proof absent.
func (uc *InteractionUseCase) resolveProof(ctx context.Context, fileID string) *string {
	url, err := uc.Chat.FileURL(ctx, fileID)
	if err != nil || url == "" {
		uc.Log.Warn("could not resolve proof file", slog.String("file", fileID), slog.Any("error", err))
		return nil
	}
	return &url
}

// confirm direct-messages the user the list of accepted entries.
func (uc *InteractionUseCase) confirm(ctx context.Context, userID string, stored []domain.Entry) {
	if len(stored) == 0 {
		return
	}
	accepted := make([]blocks.ConfirmedEntry, 0, len(stored))
	for _, e := range stored {
		accepted = append(accepted, blocks.ConfirmedEntry{ClientName: e.ClientName, Hours: e.Hours})
	}
	if err := uc.Chat.SendDM(ctx, userID, "Timesheet submitted", blocks.Confirmation(accepted)); err != nil {
		uc.Log.Error("failed to send confirmation", slog.String("user", userID), slog.String("error", err.Error()))
	}
}

func (uc *InteractionUseCase) newID() string {
	if uc.NewID != nil {
		return uc.NewID()
	}
	return uuid.NewString()
}

// guard converts a panic on fn's path into onErr's response.
func (uc *InteractionUseCase) guard(onErr func(error) Response, fn func() Response) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			uc.Log.Error("interaction handler panicked", slog.String("error", err.Error()))
			resp = onErr(err)
		}
	}()
	return fn()
}

func ephemeralError(err error) Response {
	return Ephemeral(fmt.Sprintf("❌ Error: %s\n\nPlease try again.", err))
}

func submissionError(err error) Response {
	return FieldErrors(blocks.HoursBlockID(0), fmt.Sprintf("Submission failed: %s", err))
}
