package timestamp

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/d-kuro/bank/internal/errors"
)

// dateLayouts are tried before the free-form parser so that day-first
// dotted dates and month-first slashed dates are never ambiguous.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
}

// Parsed times must fit in int64 Unix nanoseconds.
var (
	minTime = time.Unix(0, math.MinInt64)
	maxTime = time.Unix(0, math.MaxInt64)
)

func checkRange(t time.Time, input string) (time.Time, error) {
	if t.Before(minTime) || t.After(maxTime) {
		return time.Time{}, errors.Parse("time out of range: %s (must be between %s and %s)",
			input, minTime.UTC().Format(time.DateTime), maxTime.UTC().Format(time.DateTime))
	}
	return t, nil
}

// ParseDate parses a human-written date. Strings without a zone are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.Parse("unable to parse date string: empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return checkRange(t, s)
		}
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, errors.ParseWithCause(err, "unable to parse date string: %s", s)
	}
	return checkRange(t, s)
}

// ParseStamp parses the [[CC]YY]MMDDhhmm[.ss] format. Without a year the
// year of now is used; a two-digit year 70-99 means 19YY, 00-69 means 20YY.
// A valid date outside the representable range is a parse error.
func ParseStamp(s string, now time.Time, loc *time.Location) (time.Time, error) {
	base, secs, hasSecs := strings.Cut(s, ".")
	if hasSecs && (len(secs) != 2 || !allDigits(secs)) {
		return time.Time{}, errors.Parse("invalid timestamp format: %s (seconds must be two digits)", s)
	}
	if !allDigits(base) {
		return time.Time{}, errors.Parse("invalid timestamp format: %s", s)
	}

	var year int
	switch len(base) {
	case 8:
		year = now.In(loc).Year()
	case 10:
		yy := atoi(base[0:2])
		if yy >= 70 {
			year = 1900 + yy
		} else {
			year = 2000 + yy
		}
		base = base[2:]
	case 12:
		year = atoi(base[0:4])
		base = base[4:]
	default:
		return time.Time{}, errors.Parse("invalid timestamp format length: %d (expected 8, 10, or 12 digits)", len(base))
	}

	month := atoi(base[0:2])
	day := atoi(base[2:4])
	hour := atoi(base[4:6])
	minute := atoi(base[6:8])
	second := 0
	if hasSecs {
		second = atoi(secs)
	}

	if month < 1 || month > 12 ||
		day < 1 || day > daysIn(year, time.Month(month)) ||
		hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, errors.Parse("invalid timestamp values: %04d-%02d-%02d %02d:%02d:%02d",
			year, month, day, hour, minute, second)
	}

	return checkRange(time.Date(year, time.Month(month), day, hour, minute, second, 0, loc), s)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// atoi is only called on strings checked by allDigits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
