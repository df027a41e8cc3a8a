package blocks

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SubmittedText replaces the in-message form once a submission is stored.
const SubmittedText = "✅ *Timesheet Submitted Successfully!*"

// ConfirmedEntry is one accepted entry listed in a confirmation message.
type ConfirmedEntry struct {
	ClientName string
	Hours      float64
}

// Submitted is the acknowledgment that replaces a submitted form.
func Submitted() []slack.Block {
	return []slack.Block{section(SubmittedText)}
}

// ConfirmationText lists accepted entries, numbered from 1.
func ConfirmationText(entries []ConfirmedEntry) string {
	var b strings.Builder
	b.WriteString("✅ Timesheet submitted successfully!\n\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s - %s hours\n", i+1, e.ClientName, FormatHours(e.Hours))
	}
	return b.String()
}

// Confirmation is the direct message sent to a user after a submission.
func Confirmation(entries []ConfirmedEntry) []slack.Block {
	return []slack.Block{section(ConfirmationText(entries))}
}

// Reminder is the weekly nudge posted to every known channel.
func Reminder() []slack.Block {
	return []slack.Block{
		section("⏰ *Weekly Timesheet Reminder*\n\nDon't forget to fill your timesheet for this week!\nUse `/timesheet` command to submit."),
		slack.NewActionBlock("",
			slack.NewButtonBlockElement(OpenModalActionID, "open", plain("Fill Timesheet")).WithStyle(slack.StylePrimary),
		),
	}
}

// Notice is a single markdown section.
func Notice(text string) []slack.Block {
	return []slack.Block{section(text)}
}
