package literal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ordinalRe = regexp.MustCompile(`^(\d{1,2})(?:st|nd|rd|th)\s+([A-Za-z]+),?\s+(\d{4})$`)
	dmyRe     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	ymdRe     = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})[/-](\d{1,2})$`)
	clockRe   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s*([AaPp][Mm])?$`)
	epochRe   = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)
	isoRe     = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2})(:\d{2}(?:\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?$`)
	offsetRe  = regexp.MustCompile(`([+-]\d{2})(\d{2})$`)
)

var months = map[string]time.Month{}

func init() {
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		months[name] = m
		months[name[:3]] = m
	}
	months["sept"] = time.September
}

// ParseDate recognizes the date forms of a record literal:
//
//	1st January 2024          ordinal day, month name, year
//	31/12/2024  31-12-2024    day first
//	2024/12/31  2024-12-31    year first
//	09:30  09:30:15  9:30PM   time of day, on 1970-01-01 UTC
//	1700000000  1700000000000 unix seconds or milliseconds
//	2024-01-02T03:04:05Z      ISO-8601
//
// matched reports whether one of these forms applied; a matching literal
// that is not a real date is an error. When nothing matched, a generic
// calendar parse is attempted.
func ParseDate(s string) (t time.Time, matched bool, err error) {
	s = strings.TrimSpace(s)
	if m := ordinalRe.FindStringSubmatch(s); m != nil {
		t, err = ordinalDate(m[1], m[2], m[3])
		return t, true, err
	}
	if m := dmyRe.FindStringSubmatch(s); m != nil {
		t, err = civilDate(m[3], m[2], m[1])
		return t, true, err
	}
	if m := ymdRe.FindStringSubmatch(s); m != nil {
		t, err = civilDate(m[1], m[2], m[3])
		return t, true, err
	}
	if m := clockRe.FindStringSubmatch(s); m != nil {
		t, err = clockTime(m[1], m[2], m[3], m[4])
		return t, true, err
	}
	if epochRe.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, true, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		if len(s) == 13 {
			return time.UnixMilli(n).UTC(), true, nil
		}
		return time.Unix(n, 0).UTC(), true, nil
	}
	if m := isoRe.FindStringSubmatch(s); m != nil {
		t, err = isoTime(m[1], m[2], m[3])
		return t, true, err
	}
	t, err = dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, false, nil
}

// IsDate reports whether s is recognized as a date.
func IsDate(s string) bool {
	_, _, err := ParseDate(s)
	return err == nil
}

func ordinalDate(day, month, year string) (time.Time, error) {
	m, ok := months[strings.ToLower(month)]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown month %q", ErrInvalidDate, month)
	}
	return civil(year, int(m), day)
}

func civilDate(year, month, day string) (time.Time, error) {
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q", ErrInvalidDate, month)
	}
	return civil(year, m, day)
}

func civil(year string, month int, day string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", ErrInvalidDate, year)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrInvalidDate, day)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31 February to March
	if t.Day() != d || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: no day %d in %s %d", ErrInvalidDate, d, time.Month(month), y)
	}
	return t, nil
}

func clockTime(hh, mm, ss, ampm string) (time.Time, error) {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	s := 0
	if ss != "" {
		s, _ = strconv.Atoi(ss)
	}
	if ampm != "" {
		if h < 1 || h > 12 {
			return time.Time{}, fmt.Errorf("%w: hour %d with %s", ErrInvalidDate, h, ampm)
		}
		h %= 12
		if strings.EqualFold(ampm, "pm") {
			h += 12
		}
	}
	if h > 23 || m > 59 || s > 59 {
		return time.Time{}, fmt.Errorf("%w: time %s:%s", ErrInvalidDate, hh, mm)
	}
	return time.Date(1970, time.January, 1, h, m, s, 0, time.UTC), nil
}

func isoTime(base, secs, zone string) (time.Time, error) {
	if secs == "" {
		secs = ":00"
	}
	switch {
	case zone == "":
		zone = "Z"
	case zone != "Z" && !strings.Contains(zone, ":"):
		zone = offsetRe.ReplaceAllString(zone, "$1:$2")
	}
	v := base + secs + zone
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	return t, nil
}
