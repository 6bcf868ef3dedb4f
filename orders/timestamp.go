package orders

import (
	"errors"
	"strings"
	"time"
)

var errNoTime = errors.New("empty timestamp")

// US zone abbreviations seen in broker exports. Unknown abbreviations are
// read as UTC.
var zoneOffsets = map[string]int{
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
	"UTC": 0, "GMT": 0,
}

var localLayouts = []string{
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses the timestamp formats found in orders.csv, e.g.
// "01/02/2024 09:31:12 EST" or RFC3339.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errNoTime
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	loc := time.UTC
	if i := strings.LastIndexByte(s, ' '); i > 0 {
		tz := strings.ToUpper(s[i+1:])
		if isZoneToken(tz) {
			if off, ok := zoneOffsets[tz]; ok {
				loc = time.FixedZone(tz, off*3600)
			}
			s = strings.TrimSpace(s[:i])
		}
	}

	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isZoneToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
