package dto

import (
	"errors"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or RFC 3339")

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts the date formats browsers send from date and datetime inputs.
// Dates without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
