package task

import (
	"strconv"
	"strings"

	"taredo/internal/errors"
)

// Text layouts shared by the external formats (snapshot file, email body).
const (
	// DueLayout renders a due timestamp, e.g. "17/12/2026:10:30".
	DueLayout = "02/01/2006:15:04"

	// DayLayout renders a calendar day, e.g. "17/12/2026". Used by
	// search-by-date input.
	DayLayout = "02/01/2006"
)

// EmptyDeps is the textual stand-in for an empty dependency list.
const EmptyDeps = "-"

// FormatDeps renders a dependency ID list as comma-separated integers, or
// "-" when empty.
func FormatDeps(ids []int) string {
	if len(ids) == 0 {
		return EmptyDeps
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseDeps reads a dependency list in the FormatDeps form. "-" yields an
// empty list. IDs that fail to parse as integers are a validation error.
func ParseDeps(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == EmptyDeps {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.NewValidationError("malformed dependency list").
				WithField("dependencies").WithValue(s).WithCause(err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
