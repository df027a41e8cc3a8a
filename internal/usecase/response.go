package usecase

import (
	"github.com/slack-go/slack"
)

const (
	ResponseTypeEphemeral = "ephemeral"

	// ResponseActionErrors attaches field-level errors to a submitted form.
	ResponseActionErrors = "errors"
	// ResponseActionClear closes the modal stack.
	ResponseActionClear = "clear"
)

// Response is the JSON body returned to the chat platform for a command or an
// interaction. Zero fields are omitted, so Response{} encodes as "{}".
type Response struct {
	ResponseType    string            `json:"response_type,omitempty"`
	Text            string            `json:"text,omitempty"`
	Blocks          []slack.Block     `json:"blocks,omitempty"`
	ReplaceOriginal bool              `json:"replace_original,omitempty"`
	ResponseAction  string            `json:"response_action,omitempty"`
	Errors          map[string]string `json:"errors,omitempty"`
	Status          string            `json:"status,omitempty"`
}

// Ephemeral is a plain-text reply only the requester sees.
func Ephemeral(text string) Response {
	return Response{ResponseType: ResponseTypeEphemeral, Text: text}
}

// StatusOK acknowledges a request that needs no further action.
func StatusOK() Response {
	return Response{Status: "ok"}
}

// FieldErrors attaches msg to a form field so the client shows it inline.
func FieldErrors(blockID, msg string) Response {
	return Response{
		ResponseAction: ResponseActionErrors,
		Errors:         map[string]string{blockID: msg},
	}
}
