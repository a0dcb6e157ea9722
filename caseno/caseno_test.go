package caseno

import "testing"

func TestParse_WellFormed(t *testing.T) {
	cases := []struct {
		raw    string
		year   int
		label  string
		seq    string
		saType int
	}{
		{"2024타경85191", 2024, "타경", "85191", 2},
		{"2023타채1004", 2023, "타채", "1004", 3},
		{"2022타기77", 2022, "타기", "77", 4},
		{"2021가단300", 2021, "가단", "300", 3}, // unknown label falls back
		{"2024 타경 85191", 2024, "타경", "85191", 2},
	}

	for _, tc := range cases {
		id, ok := Parse(tc.raw)
		if !ok {
			t.Fatalf("Parse(%q) failed", tc.raw)
		}
		if id.Year != tc.year {
			t.Fatalf("%q: year %d, want %d", tc.raw, id.Year, tc.year)
		}
		if id.TypeLabel != tc.label {
			t.Fatalf("%q: label %q, want %q", tc.raw, id.TypeLabel, tc.label)
		}
		if id.Seq != tc.seq {
			t.Fatalf("%q: seq %q, want %q", tc.raw, id.Seq, tc.seq)
		}
		if id.SaType != tc.saType {
			t.Fatalf("%q: saType %d, want %d", tc.raw, id.SaType, tc.saType)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	id, ok := Parse("2024타경85191")
	if !ok {
		t.Fatal("parse failed")
	}
	if got := id.String(); got != "2024타경85191" {
		t.Fatalf("round trip got %q", got)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"타경85191",      // no year
		"24타경85191",    // short year
		"2024타경",       // no sequence
		"202485191",    // no type label
		"2024타경85191호", // trailing non-digit
	} {
		if id, ok := Parse(raw); ok {
			t.Fatalf("Parse(%q) = %+v, want failure", raw, id)
		}
	}
}
