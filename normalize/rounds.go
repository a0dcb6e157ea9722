package normalize

import (
	"strings"
	"time"

	"github.com/onsia-realty/auction-crawler/models"
)

// LatestSchedule returns the entry with the most recent parseable sale
// date, or nil when nothing parses. Entries are stored as encountered, so
// ordering cannot be assumed.
func LatestSchedule(entries []models.ScheduleEntry) *models.ScheduleEntry {
	var latest *models.ScheduleEntry
	var latestAt time.Time
	for i := range entries {
		at := ParseDateTime(entries[i].SaleAt)
		if at == nil {
			continue
		}
		if latest == nil || at.After(latestAt) {
			latest = &entries[i]
			latestAt = *at
		}
	}
	return latest
}

// FailedRoundCount counts rounds whose result reads as failed or
// withdrawn.
func FailedRoundCount(entries []models.ScheduleEntry) int {
	n := 0
	for _, e := range entries {
		if strings.Contains(e.Result, "유찰") || strings.Contains(e.Result, "취하") {
			n++
		}
	}
	return n
}

// ParseDate parses a normalized YYYY-MM-DD string; nil when empty or
// malformed.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseDateTime accepts the normalized date form with or without a clock
// time.
func ParseDateTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return &t
	}
	return ParseDate(s)
}
