package util

import (
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// StringToPgxText wraps pointer string to the pgtype.Text and trims it.
// A nil or blank string becomes NULL.
func StringToPgxText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}

	trim := strings.TrimSpace(*s)
	if trim == "" {
		return pgtype.Text{Valid: false}
	}

	return pgtype.Text{String: trim, Valid: true}
}
