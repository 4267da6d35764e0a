// Package workdays counts Monday–Friday business days between calendar dates.
package workdays

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseable is returned by ParseDate for text in none of the export's date formats.
var ErrUnparseable = errors.New("unrecognised date")

// layouts are the date formats seen in AiM browse and fc_review exports.
var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/06",
	"1/2/06 15:04",
	"1/2/06 3:04 PM",
	"Jan 2, 2006",
	"02-Jan-2006",
	"02-Jan-06",
}

// ParseDate parses an export date and returns its calendar day at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseable
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, ErrUnparseable
}

// Day truncates t to its calendar day, expressed at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Between counts business days in the half-open range [start, end). The count is
// negative when end is before start. No holidays are excluded.
func Between(start, end time.Time) int {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return -Between(end, start)
	}

	days := int(end.Sub(start).Hours() / 24)
	count := (days / 7) * 5
	wd := start.Weekday()
	for i := 0; i < days%7; i++ {
		switch (wd + time.Weekday(i)) % 7 {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
