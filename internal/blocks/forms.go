package blocks

import (
	"fmt"
	"strconv"

	"github.com/slack-go/slack"
)

// ProofFileTypes lists the attachment extensions the proof input accepts.
var ProofFileTypes = []string{"jpg", "jpeg", "png", "pdf"}

func newFileInput(actionID string) *slack.FileInputBlockElement {
	return slack.NewFileInputBlockElement(actionID).
		WithFileTypes(append([]string(nil), ProofFileTypes...)...).
		WithMaxFiles(1)
}

// InitialPicker renders the entry-count selector followed by a cosmetic
// preview of MaxEntries entry groups. The preview is not read on submission.
func InitialPicker() []slack.Block {
	options := make([]*slack.OptionBlockObject, 0, MaxEntries)
	for i := 1; i <= MaxEntries; i++ {
		v := strconv.Itoa(i)
		options = append(options, slack.NewOptionBlockObject(v, plain(v), nil))
	}
	selectEl := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plain("Select number of entries"), EntryCountActionID, options...)

	out := []slack.Block{
		section("*📝 Timesheet Submission*\nPlease fill in your timesheet details."),
		slack.NewDividerBlock(),
		slack.NewInputBlock(EntryCountBlockID, plain("Number of entries"), nil, selectEl),
		slack.NewActionBlock("",
			slack.NewButtonBlockElement(ShowFormsActionID, "show", plain("Show entry forms")).WithStyle(slack.StylePrimary),
		),
	}

	for i := 0; i < MaxEntries; i++ {
		description := slack.NewPlainTextInputBlockElement(plain("Enter work description"), fmt.Sprintf("description_input_%d", i))
		description.Multiline = true
		descBlock := slack.NewInputBlock(fmt.Sprintf("description_block_%d", i), plain("Description"), nil, description)
		descBlock.Optional = true

		out = append(out,
			section(fmt.Sprintf("*Entry #%d*", i+1)),
			clientInput(i),
			hoursInput(i),
			descBlock,
			slack.NewDividerBlock(),
		)
	}
	return out
}

// EntryForm renders count entry groups (client, hours, optional proof) and a
// single submit button. count is clamped to 1..MaxEntries.
func EntryForm(count int) []slack.Block {
	count = clampCount(count)
	out := []slack.Block{
		section("*📋 Fill in your timesheet entries*"),
		slack.NewDividerBlock(),
	}
	for i := 0; i < count; i++ {
		proof := slack.NewInputBlock(ProofBlockID(i), plain("Proof (Image/PDF)"), nil, newFileInput(ProofActionID(i)))
		proof.Optional = true
		out = append(out,
			section(fmt.Sprintf("*Entry #%d*", i+1)),
			clientInput(i),
			hoursInput(i),
			proof,
			slack.NewDividerBlock(),
		)
	}
	out = append(out, slack.NewActionBlock("",
		slack.NewButtonBlockElement(SubmitActionID, "submit", plain("Submit Timesheet")).WithStyle(slack.StylePrimary),
	))
	return out
}

// ModalEntryForm renders the entry groups used inside a modal. Modals submit
// through their own submit button and do not carry file inputs.
func ModalEntryForm(count int) []slack.Block {
	count = clampCount(count)
	out := make([]slack.Block, 0, count*4)
	for i := 0; i < count; i++ {
		out = append(out,
			section(fmt.Sprintf("*Entry #%d*", i+1)),
			clientInput(i),
			hoursInput(i),
			slack.NewDividerBlock(),
		)
	}
	return out
}

func clientInput(i int) *slack.InputBlock {
	el := slack.NewPlainTextInputBlockElement(plain("Enter client name"), ClientActionID(i))
	return slack.NewInputBlock(ClientBlockID(i), plain("Client Name"), nil, el)
}

func hoursInput(i int) *slack.InputBlock {
	el := slack.NewNumberInputBlockElement(plain("Enter hours"), HoursActionID(i), true)
	return slack.NewInputBlock(HoursBlockID(i), plain("Hours"), nil, el)
}
