// Package chrono parses and formats signed historical years.
//
// Years use astronomical numbering: 1 is 1 CE, 0 is 1 BCE and -499 is 500 BCE.
// A BCE year Y is therefore stored as -Y+1.
package chrono

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoDatePattern = regexp.MustCompile(`^(-?\d{1,6})-(\d{2})-(\d{2})$`)
	eraPattern     = regexp.MustCompile(`(?i)^(?:(ad|ce)\s*)?(\d{1,6})\s*(bce|bc|ce|ad)?$`)
)

// FromBCE converts a BCE year number into the stored encoding
func FromBCE(year int) int {
	return -year + 1
}

// ParseYear parses a year written as a signed integer or with an era marker
// ("500 BCE", "44 BC", "1526 CE", "AD 800").
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty year")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	m := eraPattern.FindStringSubmatch(strings.ReplaceAll(s, ".", ""))
	if m == nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", s, err)
	}
	switch strings.ToLower(m[3]) {
	case "bce", "bc":
		if m[1] != "" {
			return 0, fmt.Errorf("invalid year %q: conflicting era markers", s)
		}
		if n == 0 {
			return 0, fmt.Errorf("invalid year %q: there is no year 0 BCE", s)
		}
		return FromBCE(n), nil
	default:
		if n == 0 {
			return 0, fmt.Errorf("invalid year %q: there is no year 0 CE", s)
		}
		return n, nil
	}
}

// FormatYear renders a stored year for display
func FormatYear(year int) string {
	if year <= 0 {
		return fmt.Sprintf("%d BCE", 1-year)
	}
	return strconv.Itoa(year)
}

// FormatRange renders a start/end pair, using "present" for open ranges
func FormatRange(start int, end *int) string {
	if end == nil {
		return FormatYear(start) + " – present"
	}
	return FormatYear(start) + " – " + FormatYear(*end)
}

// EventYear resolves the year of a free-text event date.
// Accepts YYYY-MM-DD (optionally with a signed year) and anything ParseYear understands.
func EventYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if m := isoDatePattern.FindStringSubmatch(date); m != nil {
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return 0, false
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return year, true
	}
	year, err := ParseYear(date)
	if err != nil {
		return 0, false
	}
	return year, true
}
