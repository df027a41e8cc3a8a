// Package blocks renders the bot's forms and reports as chat-platform blocks.
// Every function here is pure: the same input always yields the same blocks.
package blocks

import (
	"strconv"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/domain"
)

// Block and action identifiers shared with the payload decoder.
const (
	EntryCountBlockID  = "entry_count_block"
	EntryCountActionID = "entry_count_select"
	ShowFormsActionID  = "show_entry_forms"
	SubmitActionID     = "submit_timesheet"
	OpenModalActionID  = "open_timesheet_modal"
	ModalCallbackID    = "submit_timesheet"

	// MaxEntries caps how many entry groups a single form carries.
	MaxEntries = 3
)

// ClientBlockID and friends name the per-entry inputs of an entry form.
func ClientBlockID(i int) string  { return "client_block_" + strconv.Itoa(i) }
func ClientActionID(i int) string { return "client_input_" + strconv.Itoa(i) }
func HoursBlockID(i int) string   { return "hours_block_" + strconv.Itoa(i) }
func HoursActionID(i int) string  { return "hours_input_" + strconv.Itoa(i) }
func ProofBlockID(i int) string   { return "proof_block_" + strconv.Itoa(i) }
func ProofActionID(i int) string  { return "proof_input_" + strconv.Itoa(i) }

// FormSpec selects which form Render produces.
type FormSpec interface {
	formSpec()
}

// InitialPickerSpec is the entry-count picker shown by the timesheet command.
type InitialPickerSpec struct{}

// EntryFormSpec is a form with Count entry groups and a submit button.
type EntryFormSpec struct {
	Count int
}

// ReportSpec is a titled report over Entries.
type ReportSpec struct {
	Title   string
	Entries []domain.Entry
}

func (InitialPickerSpec) formSpec() {}
func (EntryFormSpec) formSpec()     {}
func (ReportSpec) formSpec()        {}

// Render maps spec to its block sequence. Unknown specs render nothing.
func Render(spec FormSpec) []slack.Block {
	switch s := spec.(type) {
	case InitialPickerSpec:
		return InitialPicker()
	case EntryFormSpec:
		return EntryForm(s.Count)
	case ReportSpec:
		return Report(s.Entries, s.Title)
	}
	return nil
}

// FormatHours renders hours using the shortest exact decimal form.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(mrkdwn(text), nil, nil)
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxEntries {
		return MaxEntries
	}
	return n
}
