package attendance

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const (
	minYear = 1900
	maxYear = 2200
)

// Today returns the current UTC calendar day at midnight.
func Today() time.Time {
	return DayOf(time.Now())
}

// DayOf truncates t to midnight of its UTC calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD query value. An empty value means today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today(), nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if d.Year() < minYear || d.Year() > maxYear {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
