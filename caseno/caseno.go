// Package caseno parses court case-number strings (e.g. "2024타경85191")
// into the fields used to address the auction source system.
package caseno

import (
	"fmt"
	"strings"
	"unicode"
)

// CaseID is the parsed form of a case number. It has no identity beyond
// its fields and is only ever derived from a well-formed string.
type CaseID struct {
	Year      int
	TypeLabel string // 사건구분, e.g. 타경
	Seq       string // sequence digits, kept verbatim
	SaType    int    // session discriminator for the source system
}

// saTypes maps the known case-type labels to the session discriminator the
// source encodes in its query strings. Unrecognized labels fall back to 3.
var saTypes = map[string]int{
	"타경": 2,
	"타채": 3,
	"타기": 4,
}

const defaultSaType = 3

// Parse extracts a CaseID from a raw case-number string. It expects a
// 4-digit year, a non-digit type label, and a trailing digit run. Anything
// else yields ok=false; there is no partially-filled result.
func Parse(raw string) (CaseID, bool) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	runes := []rune(s)
	if len(runes) < 6 {
		return CaseID{}, false
	}

	year := 0
	for _, r := range runes[:4] {
		if r < '0' || r > '9' {
			return CaseID{}, false
		}
		year = year*10 + int(r-'0')
	}

	// Type label: the non-digit run after the year.
	i := 4
	for i < len(runes) && !unicode.IsDigit(runes[i]) {
		i++
	}
	label := string(runes[4:i])
	if label == "" {
		return CaseID{}, false
	}

	// Sequence: the rest must be all digits.
	seq := string(runes[i:])
	if seq == "" {
		return CaseID{}, false
	}
	for _, r := range seq {
		if !unicode.IsDigit(r) {
			return CaseID{}, false
		}
	}

	sa, ok := saTypes[label]
	if !ok {
		sa = defaultSaType
	}

	return CaseID{Year: year, TypeLabel: label, Seq: seq, SaType: sa}, true
}

// String reassembles the original case-number form.
func (id CaseID) String() string {
	return fmt.Sprintf("%04d%s%s", id.Year, id.TypeLabel, id.Seq)
}
