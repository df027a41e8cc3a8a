package interaction

import (
	"strconv"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(values StateValues, i int, client, hours string) {
	idx := strconv.Itoa(i)
	values["client_block_"+idx] = map[string]slack.BlockAction{"client_input_" + idx: {Value: client}}
	values["hours_block_"+idx] = map[string]slack.BlockAction{"hours_input_" + idx: {Value: hours}}
}

func TestScanSubmission_Contiguous(t *testing.T) {
	values := StateValues{}
	group(values, 0, "Acme", "3")
	group(values, 1, "Globex", "1.5")
	group(values, 2, "Initech", "x")

	got, err := ScanSubmission(values)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range got {
		assert.Equal(t, i, e.Index)
	}
	assert.Equal(t, "Acme", got[0].ClientName)
	assert.Equal(t, 1.5, got[1].Hours)
	assert.Equal(t, "x", got[2].HoursRaw)
	assert.Equal(t, 0.0, got[2].Hours)
}

func TestScanSubmission_StopsAtGap(t *testing.T) {
	values := StateValues{}
	group(values, 0, "Acme", "3")
	group(values, 2, "Initech", "4")

	got, err := ScanSubmission(values)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].ClientName)
}

func TestScanSubmission_Empty(t *testing.T) {
	got, err := ScanSubmission(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScanSubmission_Proof(t *testing.T) {
	values := StateValues{}
	group(values, 0, "Acme", "3")
	group(values, 1, "Globex", "2")
	values["proof_block_0"] = map[string]slack.BlockAction{"proof_input_0": {Files: []slack.File{{ID: "F123"}, {ID: "F456"}}}}
	values["proof_block_1"] = map[string]slack.BlockAction{"proof_input_1": {}}

	got, err := ScanSubmission(values)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "F123", got[0].ProofFileID)
	assert.Empty(t, got[1].ProofFileID)
}

func TestScanSubmission_MissingHoursBlock(t *testing.T) {
	values := StateValues{
		"client_block_0": {"client_input_0": {Value: "Acme"}},
	}
	_, err := ScanSubmission(values)
	assert.ErrorIs(t, err, ErrMalformedSubmission)
}

func TestScanSubmission_NullValues(t *testing.T) {
	values := StateValues{
		"client_block_0": {"client_input_0": {}},
		"hours_block_0":  {"hours_input_0": {}},
	}
	got, err := ScanSubmission(values)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].ClientName)
	assert.Zero(t, got[0].Hours)
}
