package models

import "strings"

// Status is an inspection status. Values outside the fixed vocabulary are kept
// verbatim (they were entered by a person) but count as unclassified.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusComplete    Status = "Complete"
	StatusIncomplete  Status = "Incomplete"
	StatusNeedsReview Status = "NeedsReview"
)

// Statuses lists the vocabulary in display order.
var Statuses = []Status{StatusPending, StatusComplete, StatusIncomplete, StatusNeedsReview}

// IsBlank reports whether the status is absent or whitespace only.
func (s Status) IsBlank() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Valid reports whether s is one of the four known statuses. Matching is case-sensitive.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusComplete, StatusIncomplete, StatusNeedsReview:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
