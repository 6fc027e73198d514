package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation from either supported dialect. Postgres names the
// violated constraint, so when constraintName is provided the helper looks for
// that text in the message. Sqlite reports "UNIQUE constraint failed:
// table.column" and never surfaces index names, so any sqlite unique violation
// matches regardless of constraintName.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return true
	}
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
