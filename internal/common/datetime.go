package common

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout
const (
	DateFormatYYYYMMDD                  = "2006-01-02"
	DateFormatYYYYMM                    = "2006-01"
	DateFormatYYYYMMWithoutDash         = "200601"
	DateFormatBatchID                   = "20060102_150405"
	DateFormatYYYYMMDDWithTime          = "2006-01-02 15:04:05"
	DateFormatYYYYMMDDWithSlash         = "2006/01/02"
	DateFormatYYYYMMDDTHHMMSS           = "2006-01-02T15:04:05"
	DateFormatYYYYMMDDWithTimeAndOffset = "2006-01-02T15:04:05-07:00" // same as RFC3339/ISO8601
)

var parseDateLayouts = []string{
	time.RFC3339Nano,
	DateFormatYYYYMMDDWithTimeAndOffset,
	DateFormatYYYYMMDDTHHMMSS,
	DateFormatYYYYMMDDWithTime,
	DateFormatYYYYMMDD,
	DateFormatYYYYMMDDWithSlash,
}

func ParseStringToDatetime(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFormatDate, value)
	}
	return t, nil
}

// ParseDate accepts a date or a timestamp in one of the export formats and
// returns the calendar date at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidFormatDate)
	}

	for _, layout := range parseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// "YYYY-MM-DD" followed by anything else, e.g. a fractional timestamp
	if len(value) > len(DateFormatYYYYMMDD) {
		if t, err := time.Parse(DateFormatYYYYMMDD, value[:len(DateFormatYYYYMMDD)]); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFormatDate, value)
}

// FormatPeriodName returns the "YYYY-MM" accounting period of a date.
func FormatPeriodName(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormatYYYYMM)
}

// FormatPeriodNameFromString derives the period from a "YYYY-MM-DD ..." prefixed string.
func FormatPeriodNameFromString(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < len(DateFormatYYYYMM) {
		return ""
	}
	if _, err := time.Parse(DateFormatYYYYMM, value[:len(DateFormatYYYYMM)]); err != nil {
		return ""
	}
	return value[:len(DateFormatYYYYMM)]
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormatYYYYMMDD)
}
