package crawler

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1,234,567원", 1234567, true},
		{"₩ 2,430,000,000", 2430000000, true},
		{"매각 (2,055,000,000원)", 2055000000, true},
		{"0원", 0, true},
		{"", 0, false},
		{"-", 0, false},
		{"미정", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParsePrice(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"84.93㎡", 84.93, true},
		{"1,234.5㎡", 1234.5, true},
		{"660㎡", 660, true},
		{"43.4㎡ (13.1평)", 43.4, true},
		{"", 0, false},
		{"미등기", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseArea(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseArea(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024.03.15", "2024-03-15", true},
		{"2024.3.5", "2024-03-05", true},
		{"2024-03-15", "2024-03-15", true},
		{"2024. 03. 15", "2024-03-15", true},
		{"", "", false},
		{"미정", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeDate(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeDateTime(t *testing.T) {
	if got, ok := NormalizeDateTime("2024.12.18 10:00"); !ok || got != "2024-12-18 10:00" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if got, ok := NormalizeDateTime("2024.12.18"); !ok || got != "2024-12-18" {
		t.Fatalf("date without time: got %q, %v", got, ok)
	}
	if _, ok := NormalizeDateTime("10:00"); ok {
		t.Fatal("time without date should not normalize")
	}
}
