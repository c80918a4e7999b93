// utils/timeutil.go
package utils

import (
	"errors"
	"strings"
	"time"
)

// ISODateLayout is the canonical wire layout: UTC with millisecond precision,
// e.g. 2025-09-24T08:12:00.000Z
const ISODateLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrInvalidDate = errors.New("invalid ISO-8601 date")

// Layouts accepted on input. RFC3339 parsing also accepts fractional seconds.
var isoInputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseISODate parses an ISO-8601 date or date-time. Values without a zone
// are read as UTC.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range isoInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func FormatISODate(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}

// CanonicalISODate re-renders s in the canonical layout so two spellings of
// the same instant compare equal.
func CanonicalISODate(s string) (string, error) {
	t, err := ParseISODate(s)
	if err != nil {
		return "", err
	}
	return FormatISODate(t), nil
}
