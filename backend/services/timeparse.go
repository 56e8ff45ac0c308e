package services

import (
	"fmt"
	"strings"
	"time"
)

// Submission timestamps arrive in several shapes depending on what the AI
// read off the report: date separators may be '.' or '-', and seconds may
// be missing. All parsing funnels through here so the ambiguity lives in
// exactly one place.
const (
	dayLayout          = "2006-01-02"
	clockLayout        = "15:04"
	timestampLayout    = "2006-01-02 15:04:05"
	timestampNoSeconds = "2006-01-02 15:04"
)

// Default clock bounds substituted when a schedule item carries a missing
// or malformed time.
const (
	defaultStartClock = "00:00"
	defaultEndClock   = "23:59"
)

// ParseSubmissionTime normalizes a record timestamp and parses it, trying
// the with-seconds layout first.
func ParseSubmissionTime(raw string) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ".", "-")
	if t, err := time.Parse(timestampLayout, normalized); err == nil {
		return t, nil
	}
	if t, err := time.Parse(timestampNoSeconds, normalized); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized submission time %q", raw)
}

// NormalizeSubmissionTime returns the canonical "YYYY-MM-DD HH:MM:SS" form
// of a raw timestamp, or an error when it cannot be parsed.
func NormalizeSubmissionTime(raw string) (string, error) {
	t, err := ParseSubmissionTime(raw)
	if err != nil {
		return "", err
	}
	return t.Format(timestampLayout), nil
}

// clockOrDefault validates an "HH:MM" string, substituting def when the
// value is empty or malformed. Bad schedule times are never fatal.
func clockOrDefault(clock, def string) string {
	if _, err := time.Parse(clockLayout, clock); err != nil {
		return def
	}
	return clock
}

// dayClock combines a date with an "HH:MM" clock and a seconds suffix into
// a concrete time.
func dayClock(date, clock, seconds string) (time.Time, error) {
	return time.Parse(timestampLayout, fmt.Sprintf("%s %s:%s", date, clock, seconds))
}

// attributionWindow is the closed [start, end] window of an ordinary goal:
// the aligned item's span widened to :00 / :59 seconds. Malformed clocks
// fall back to the whole day.
func attributionWindow(date string, start, end string) (time.Time, time.Time, error) {
	startDt, err := dayClock(date, clockOrDefault(start, defaultStartClock), "00")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDt, err := dayClock(date, clockOrDefault(end, defaultEndClock), "59")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDt, endDt, nil
}

// durationMinutes computes an item's span in minutes, falling back to 60
// when either bound is missing or malformed.
func durationMinutes(start, end string) int {
	startT, err1 := time.Parse(clockLayout, start)
	endT, err2 := time.Parse(clockLayout, end)
	if err1 != nil || err2 != nil {
		return 60
	}
	minutes := int(endT.Sub(startT).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
