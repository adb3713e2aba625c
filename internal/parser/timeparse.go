package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timePattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(a\.?m\.?|p\.?m\.?|ET|EST|EDT|PT|PST|PDT|CET|CEST|BST|GMT|UTC)?`)

// ParseTime reads an H:MM time of day and places it on now's date. A PM
// marker adds 12 to hours below 12, "12 AM" is midnight, and the hour is
// taken modulo 24. ok is false, and now is returned, when no time is found.
// Zone abbreviations are recognized; only UTC/GMT change the location.
func ParseTime(text string, now time.Time) (time.Time, bool) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return now, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return now, false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return now, false
	}

	loc := now.Location()
	switch marker := strings.ToLower(strings.ReplaceAll(m[3], ".", "")); marker {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "utc", "gmt":
		loc = time.UTC
	}

	hour %= 24
	minute %= 60

	base := now.In(loc)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, loc), true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp reads a full date-time as found in embedded payloads,
// falling back to a bare time of day.
func ParseTimestamp(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, true
		}
	}
	return ParseTime(s, now)
}

// FromEpoch converts an epoch number, milliseconds when it is larger than
// any plausible second count.
func FromEpoch(v float64) time.Time {
	if v > 1e12 {
		return time.UnixMilli(int64(v))
	}
	return time.Unix(int64(v), 0)
}
