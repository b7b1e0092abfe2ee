package utils

import (
	"fmt"
	"time"
)

const (
	dbDateTimeLayout = "2006-01-02 15:04:05"
	dateOnlyLayout   = "2006-01-02"
)

// NowUTC returns the current time in UTC truncated to whole seconds,
// which is the precision stored in DATETIME columns.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatDateTimeForDB formats a time for DATETIME columns (UTC).
func FormatDateTimeForDB(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dbDateTimeLayout)
}

// FormatNullableDateTime returns nil for a nil time so the column stores NULL.
func FormatNullableDateTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return FormatDateTimeForDB(*t)
}

// ParseUserDate parses incoming user-supplied date/time strings.
// A date without time means the end of that day (UTC).
func ParseUserDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC().Truncate(time.Second), nil
	}
	if ts, err := time.ParseInLocation(dbDateTimeLayout, value, time.UTC); err == nil {
		return ts, nil
	}
	if ts, err := time.ParseInLocation(dateOnlyLayout, value, time.UTC); err == nil {
		return ts.Add(24*time.Hour - time.Second), nil
	}

	return time.Time{}, fmt.Errorf("unsupported time format: %s", value)
}

// ParseDBDate parses date strings retrieved from the database.
func ParseDBDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	if ts, err := time.ParseInLocation(dbDateTimeLayout, value, time.UTC); err == nil {
		return ts, nil
	}

	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}

	if ts, err := time.ParseInLocation(dateOnlyLayout, value, time.UTC); err == nil {
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("unsupported db time format: %s", value)
}
