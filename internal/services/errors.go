package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/credfile-backend/internal/ingest/payload"
)

// SchemaInvalidError reports structurally invalid payloads. Nothing is
// written when this is returned.
type SchemaInvalidError struct {
	Errors []payload.SchemaError
}

func (e *SchemaInvalidError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", se.Path, se.Message))
	}
	return "schema invalid: " + strings.Join(parts, "; ")
}

// ReferentialInvalidError reports payloads whose internal references do not
// resolve. Errors carries every violation found, not just the first.
type ReferentialInvalidError struct {
	Errors []string
}

func (e *ReferentialInvalidError) Error() string {
	return "referential integrity: " + strings.Join(e.Errors, "; ")
}

// StorageConflictError wraps a uniqueness violation raised inside the
// ingest transaction, typically a payload reusing an entity ID with
// different content.
type StorageConflictError struct {
	Err error
}

func (e *StorageConflictError) Error() string {
	return "storage conflict: " + e.Err.Error()
}

func (e *StorageConflictError) Unwrap() error { return e.Err }
