package utils

import (
	"database/sql"
	"strings"
)

// NullStringValue returns the trimmed string of ns, or "" when it is NULL.
// Dimension columns come back NULL when a LEFT JOIN finds no match.
func NullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return strings.TrimSpace(ns.String)
	}
	return ""
}
