// Package normalize validates and coerces raw request input into the
// canonical values the exercise store works with.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInput is returned when a required field is missing or malformed.
var ErrInvalidInput = errors.New("invalid input")

// DateLayout is the canonical output format for every date in a response.
const DateLayout = "Mon Jan 02 2006"

// StoreDateLayout is the calendar-date form persisted by the store. It sorts
// lexicographically in date order.
const StoreDateLayout = "2006-01-02"

var dateLayouts = []string{
	StoreDateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	DateLayout,
	time.RFC1123,
	time.RFC1123Z,
}

// RequireText trims raw and fails when nothing is left.
func RequireText(raw, field string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return value, nil
}

// ParseDuration parses a whole number of minutes. Decimal input is truncated.
// Values must fit a 32-bit integer column.
func ParseDuration(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: duration is required", ErrInvalidInput)
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("%w: duration is out of range", ErrInvalidInput)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: duration must be a number", ErrInvalidInput)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: duration is out of range", ErrInvalidInput)
	}
	return int(math.Trunc(f)), nil
}

// ParseDate reports whether raw holds a recognizable calendar date. The
// result is the day as written, in any offset it carries, at UTC midnight.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return calendarDay(t), true
		}
	}
	return time.Time{}, false
}

// ParseDateOrDefault falls back to now when raw is absent or unparseable.
func ParseDateOrDefault(raw string, now time.Time) time.Time {
	if t, ok := ParseDate(raw); ok {
		return t
	}
	return TruncateDay(now)
}

// TruncateDay drops the time of day, keeping the UTC calendar date.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as "Mon Jan 02 2006".
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseLimit returns a positive cap, or zero when raw should not limit results.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// LogFilter selects a user's exercises for the logs endpoint.
type LogFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
	// Limit of zero means no cap.
	Limit int
}

// HasDateRange reports whether any date bound applies.
func (f LogFilter) HasDateRange() bool {
	return f.From != nil || f.To != nil
}

// BuildLogFilter turns optional from/to/limit query values into a filter.
// Invalid bounds and limits are ignored individually.
func BuildLogFilter(userID, from, to, limit string) LogFilter {
	filter := LogFilter{UserID: userID, Limit: ParseLimit(limit)}
	if t, ok := ParseDate(from); ok {
		filter.From = &t
	}
	if t, ok := ParseDate(to); ok {
		filter.To = &t
	}
	return filter
}
