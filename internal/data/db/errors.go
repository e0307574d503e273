package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsConflict reports whether an error is a primary-key or unique-constraint
// collision. The ingest path treats this as a data-integrity signal (an ID
// reused with different content) and lets it roll back the whole
// transaction.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.TrimSpace(pgErr.Code) == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	// sqlite reports unique violations as plain text.
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
