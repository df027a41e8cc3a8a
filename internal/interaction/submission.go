package interaction

import (
	"fmt"

	"timesheet-bot/internal/blocks"
)

// EntryInput is one entry group of a submitted form.
type EntryInput struct {
	Index       int
	ClientName  string
	HoursRaw    string
	Hours       float64
	ProofFileID string // empty when no file was attached
}

// ScanSubmission walks client_block_{i} from i=0 and stops at the first
// missing index. Gaps end the scan: groups after a gap are ignored.
func ScanSubmission(values StateValues) ([]EntryInput, error) {
	var out []EntryInput
	for i := 0; ; i++ {
		clientBlock, ok := values[blocks.ClientBlockID(i)]
		if !ok {
			return out, nil
		}
		client, ok := clientBlock[blocks.ClientActionID(i)]
		if !ok {
			return out, fmt.Errorf("%w: %s has no %s", ErrMalformedSubmission, blocks.ClientBlockID(i), blocks.ClientActionID(i))
		}
		hoursBlock, ok := values[blocks.HoursBlockID(i)]
		if !ok {
			return out, fmt.Errorf("%w: missing %s", ErrMalformedSubmission, blocks.HoursBlockID(i))
		}
		hours, ok := hoursBlock[blocks.HoursActionID(i)]
		if !ok {
			return out, fmt.Errorf("%w: %s has no %s", ErrMalformedSubmission, blocks.HoursBlockID(i), blocks.HoursActionID(i))
		}

		in := EntryInput{
			Index:      i,
			ClientName: client.Value,
			HoursRaw:   hours.Value,
			Hours:      ParseHours(hours.Value),
		}
		if proof, ok := values[blocks.ProofBlockID(i)][blocks.ProofActionID(i)]; ok && len(proof.Files) > 0 {
			in.ProofFileID = proof.Files[0].ID
		}
		out = append(out, in)
	}
}
