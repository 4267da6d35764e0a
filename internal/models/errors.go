package models

import "fmt"

// UnparseableError reports a source value that could not be interpreted.
// It is local to one record: the derived field is left absent and processing continues.
type UnparseableError struct {
	RecordID string
	Field    string
	Value    string
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("record %s: unparseable %s %q", e.RecordID, e.Field, e.Value)
}
