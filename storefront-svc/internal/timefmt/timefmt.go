// Package timefmt converts between time.Time and the storefront display
// format "HH:mm • DD/MM/YYYY" used by seed data and the admin UI.
package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const separator = "•"

var ErrMalformedTimestamp = errors.New("malformed display timestamp")

// Parse reads "HH:mm • DD/MM/YYYY" in loc. Single-digit fields are accepted.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	clock, date, ok := strings.Cut(s, separator)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q has no bullet separator", ErrMalformedTimestamp, s)
	}

	hm, err := fields(strings.TrimSpace(clock), ":", 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time part of %q: %v", ErrMalformedTimestamp, s, err)
	}
	dmy, err := fields(strings.TrimSpace(date), "/", 3)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date part of %q: %v", ErrMalformedTimestamp, s, err)
	}

	hour, minute := hm[0], hm[1]
	day, month, year := dmy[0], dmy[1], dmy[2]
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: %q has an out of range time", ErrMalformedTimestamp, s)
	}
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, fmt.Errorf("%w: %q has an out of range date", ErrMalformedTimestamp, s)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	// time.Date normalises 31/02 into March; reject instead.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrMalformedTimestamp, s)
	}
	return t, nil
}

// Format renders t in the display format; the zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04 • 02/01/2006")
}

// Clock renders only the "HH:mm" part, as shown in the activity feed.
func Clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

func fields(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("want %d fields separated by %q, got %d", n, sep, len(parts))
	}
	out := make([]int, n)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !digitsOnly(p) {
			return nil, fmt.Errorf("field %q is not a number", p)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("field %q is not a number", p)
		}
		out[i] = v
	}
	return out, nil
}

func digitsOnly(s string) bool {
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
