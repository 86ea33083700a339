package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueConstraintError reports whether err is a unique-constraint
// violation from Postgres or SQLite.
func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
