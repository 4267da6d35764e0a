package models

import (
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// DeriveIfAbsent returns current unless blank reports it as absent, in which case
// the first candidate that is not blank is returned. It never replaces a set value.
func DeriveIfAbsent[T any](current T, blank func(T) bool, candidates ...func() T) T {
	if !blank(current) {
		return current
	}
	for _, derive := range candidates {
		if v := derive(); !blank(v) {
			return v
		}
	}
	return current
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}
