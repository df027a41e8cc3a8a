// Package interaction decodes interaction payloads into typed values once, at
// the HTTP boundary, so dispatch never inspects nested maps.
package interaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/blocks"
)

// Kind is the interaction category.
type Kind string

const (
	KindBlockActions   Kind = "block_actions"
	KindViewSubmission Kind = "view_submission"
	KindUnknown        Kind = ""
)

var (
	ErrEmptyPayload        = errors.New("interaction: empty payload")
	ErrMalformedPayload    = errors.New("interaction: malformed payload")
	ErrMalformedSubmission = errors.New("interaction: malformed submission")
)

// User identifies who triggered the interaction.
type User struct {
	ID       string
	Username string
}

// Payload is a decoded interaction.
type Payload struct {
	Kind       Kind
	RawType    string
	User       User
	ChannelID  string
	MessageTS  string
	TriggerID  string
	ActionID   string // first action; empty for view submissions
	CallbackID string

	// EntryCount is the selected value of the entry-count picker, 1 when
	// absent or unparseable.
	EntryCount int

	values StateValues
}

// StateValues is the platform's block_id -> action_id -> element state map.
type StateValues map[string]map[string]slack.BlockAction

// payloadUser carries user.username, which slack.User does not model.
type payloadUser struct {
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

// Decode parses the JSON document carried in the "payload" form field.
func Decode(data []byte) (Payload, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Payload{}, ErrEmptyPayload
	}
	var cb slack.InteractionCallback
	if err := json.Unmarshal(data, &cb); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var pu payloadUser
	_ = json.Unmarshal(data, &pu)

	p := Payload{
		RawType:   string(cb.Type),
		TriggerID: cb.TriggerID,
		User: User{
			ID:       cb.User.ID,
			Username: firstNonEmpty(pu.User.Username, cb.User.Name, "Unknown"),
		},
	}
	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		p.Kind = KindBlockActions
		p.ActionID = cb.ActionID
		if len(cb.ActionCallback.BlockActions) > 0 {
			p.ActionID = cb.ActionCallback.BlockActions[0].ActionID
		}
		if cb.BlockActionState != nil {
			p.values = cb.BlockActionState.Values
		}
	case slack.InteractionTypeViewSubmission:
		p.Kind = KindViewSubmission
		p.CallbackID = cb.View.CallbackID
		if cb.View.State != nil {
			p.values = cb.View.State.Values
		}
	default:
		p.Kind = KindUnknown
	}

	p.ChannelID = firstNonEmpty(cb.Channel.ID, cb.Container.ChannelID)
	p.MessageTS = firstNonEmpty(cb.Message.Timestamp, cb.Container.MessageTs)
	p.EntryCount = entryCount(p.values)
	return p, nil
}

// Submission scans the payload's form state into entry inputs.
func (p Payload) Submission() ([]EntryInput, error) {
	return ScanSubmission(p.values)
}

func entryCount(values StateValues) int {
	el, ok := values[blocks.EntryCountBlockID][blocks.EntryCountActionID]
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(el.SelectedOption.Value))
	if err != nil {
		return 1
	}
	return n
}

// ParseHours converts free-text hours input. Anything that is not a finite,
// non-negative number becomes 0.
func ParseHours(s string) float64 {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
