package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// Sentinel errors for store operations. Check them with errors.Is.
var (
	// ErrTransactionConflict means concurrent writes touched the same records.
	// The write can be retried.
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrNotFound indicates the requested work order does not exist.
	ErrNotFound = errors.New("work order not found")

	// ErrSchemaViolation means a value did not match a field definition.
	ErrSchemaViolation = errors.New("schema violation")
)

// wrapQueryError wraps known SurrealDB query errors with a sentinel and returns
// anything else unchanged.
func wrapQueryError(err error) error {
	if err == nil {
		return nil
	}

	var queryErr *surrealdb.QueryError
	if errors.As(err, &queryErr) {
		msg := queryErr.Message
		switch {
		case strings.Contains(msg, "Transaction conflict"):
			return fmt.Errorf("%w: %s", ErrTransactionConflict, msg)
		case strings.Contains(msg, "Couldn't coerce"), strings.Contains(msg, "Expected a"):
			return fmt.Errorf("%w: %s", ErrSchemaViolation, msg)
		}
	}

	return err
}
