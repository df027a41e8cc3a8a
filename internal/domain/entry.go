package domain

import (
	"errors"
	"time"
)

// ErrStorage wraps every failure surfaced by an entry store adapter.
var ErrStorage = errors.New("storage failure")

// Entry is a persisted timesheet entry.
type Entry struct {
	ID           int64
	SubmissionID string // shared by all entries created from one form submission
	UserID       string
	Username     string
	ChannelID    string
	ClientName   string
	Hours        float64
	ProofURL     *string // nil when no proof was attached
	SubmittedAt  time.Time
}

// NewEntry is the insert shape for an entry; the store assigns ID and SubmittedAt.
type NewEntry struct {
	SubmissionID string
	UserID       string
	Username     string
	ChannelID    string
	ClientName   string
	Hours        float64
	ProofURL     *string
}

// TotalHours sums the hours of all entries without rounding.
func TotalHours(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return total
}
