package blocks

import (
	"fmt"

	"github.com/slack-go/slack"

	"timesheet-bot/internal/domain"
)

// DateLayout is how submission timestamps appear in reports.
const DateLayout = "2006-01-02 15:04"

// NoEntriesText is shown when a report period has no entries.
const NoEntriesText = "_No timesheet entries found for this period._"

// MaxReportEntries keeps a report within the platform's 50-block message
// limit: 2 header blocks, 3 per entry, a truncation notice and the total.
const MaxReportEntries = 15

// Report renders a header with title followed by one summary per entry and a
// trailing total. Entry order is preserved. Entries past MaxReportEntries are
// replaced by a notice; the total still covers every entry.
func Report(entries []domain.Entry, title string) []slack.Block {
	out := []slack.Block{
		slack.NewHeaderBlock(plain(title)),
		slack.NewDividerBlock(),
	}
	if len(entries) == 0 {
		return append(out, section(NoEntriesText))
	}

	shown := entries
	if len(shown) > MaxReportEntries {
		shown = shown[:MaxReportEntries]
	}
	for _, e := range shown {
		fields := []*slack.TextBlockObject{
			mrkdwn("*User:*\n" + e.Username),
			mrkdwn("*Client:*\n" + e.ClientName),
			mrkdwn("*Hours:*\n" + FormatHours(e.Hours)),
			mrkdwn("*Date:*\n" + e.SubmittedAt.Format(DateLayout)),
		}
		out = append(out,
			slack.NewSectionBlock(nil, fields, nil),
			section("*Proof:* "+proofText(e.ProofURL)),
			slack.NewDividerBlock(),
		)
	}
	if hidden := len(entries) - len(shown); hidden > 0 {
		out = append(out, section(truncatedText(hidden)))
	}
	return append(out, section(fmt.Sprintf("*Total Hours:* %s", FormatHours(domain.TotalHours(entries)))))
}

func truncatedText(hidden int) string {
	noun := "entries"
	if hidden == 1 {
		noun = "entry"
	}
	return fmt.Sprintf("_…and %d more %s. Use the `export` command for the full list._", hidden, noun)
}

func proofText(url *string) string {
	if url == nil || *url == "" {
		return "_No proof attached_"
	}
	return fmt.Sprintf("<%s|View Proof>", *url)
}
