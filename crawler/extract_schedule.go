package crawler

import (
	"strings"

	"github.com/onsia-realty/auction-crawler/models"
)

// ExtractSchedule parses the auction-round document. Rounds are numbered
// by array position as encountered; a winning bid is derived only when the
// result text signals a completed sale.
func ExtractSchedule(html string) ([]models.ScheduleEntry, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "schedule", Err: err}
	}

	var entries []models.ScheduleEntry
	for i, row := range listRows(doc) {
		entry := models.ScheduleEntry{
			Round:    i + 1,
			Kind:     row["기일종류"],
			Location: row["기일장소"],
			MinPrice: rowPrice(row, "최저매각가격"),
			Result:   row["기일결과"],
		}
		if v, ok := NormalizeDateTime(row["기일"]); ok {
			entry.SaleAt = v
		}
		if bid, ok := winningBid(entry.Result); ok {
			entry.WinningBid = &bid
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// winningBid pulls the bid amount out of a result cell like
// "매각 (124,000,000원)". Anything that does not read as a completed sale
// yields no amount.
func winningBid(result string) (int64, bool) {
	if !strings.Contains(result, "매각") && !strings.Contains(result, "낙찰") {
		return 0, false
	}
	if strings.Contains(result, "매각준비") || strings.Contains(result, "불허") {
		return 0, false
	}
	return ParsePrice(result)
}
