package crawler

import (
	"regexp"
	"strconv"
	"strings"
)

// Field-level coercion shared by the extractors. Absent or unparseable
// input yields ok=false, never a zero standing in for a real value.

var (
	digitsRe   = regexp.MustCompile(`\d`)
	areaRe     = regexp.MustCompile(`([0-9][0-9,]*(?:\.[0-9]+)?)`)
	dateRe     = regexp.MustCompile(`(\d{4})[.\-]\s*(\d{1,2})[.\-]\s*(\d{1,2})`)
	timeRe     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	multiSpace = regexp.MustCompile(`[\s\x{00a0}]+`)
)

// ParsePrice strips every non-digit rune (₩, 원, commas, whitespace) and
// parses what remains. "1,234,567원" -> 1234567.
func ParsePrice(s string) (int64, bool) {
	digits := strings.Join(digitsRe.FindAllString(s, -1), "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseArea takes the leading numeric run before a unit suffix.
// "84.93㎡" -> 84.93, "1,234.5㎡" -> 1234.5.
func ParseArea(s string) (float64, bool) {
	m := areaRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NormalizeDate canonicalizes the source's dot-separated date form to
// YYYY-MM-DD. Idempotent on already-hyphenated input. The source carries
// no time zones.
func NormalizeDate(s string) (string, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	y := m[1]
	mo := m[2]
	d := m[3]
	if len(mo) == 1 {
		mo = "0" + mo
	}
	if len(d) == 1 {
		d = "0" + d
	}
	return y + "-" + mo + "-" + d, true
}

// NormalizeDateTime normalizes a date with an optional HH:MM clock time,
// e.g. "2024.12.18 10:00" -> "2024-12-18 10:00".
func NormalizeDateTime(s string) (string, bool) {
	date, ok := NormalizeDate(s)
	if !ok {
		return "", false
	}
	if t := timeRe.FindStringSubmatch(s); t != nil {
		h := t[1]
		if len(h) == 1 {
			h = "0" + h
		}
		return date + " " + h + ":" + t[2], true
	}
	return date, true
}

// cleanText collapses runs of whitespace (including NBSP, which the source
// pads cells with) into single spaces.
func cleanText(s string) string {
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}
