package crawler

import (
	"strings"

	"github.com/onsia-realty/auction-crawler/models"
)

// ExtractTenants parses the survey-report document (임차인현황). Like the
// rights flags, priority and bid-request are text heuristics.
func ExtractTenants(html string) ([]models.TenantEntry, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "tenants", Err: err}
	}

	var tenants []models.TenantEntry
	for _, row := range listRows(doc) {
		tenants = append(tenants, models.TenantEntry{
			Name:        row["임차인"],
			Portion:     row["점유부분"],
			MoveInDate:  rowDate(row, "전입일자"),
			FixedDate:   rowDate(row, "확정일자"),
			Deposit:     rowPrice(row, "보증금"),
			MonthlyRent: rowPrice(row, "차임"),
			HasPriority: hasPriority(row["대항력"]),
			BidRequest:  hasBidRequest(row["배당요구"]),
		})
	}
	return tenants, nil
}

// hasPriority reads the 대항력 cell. Negative phrasings like
// "대항력 없음" still name the right, so 없음 wins over 대항.
func hasPriority(cell string) bool {
	if strings.Contains(cell, "없음") {
		return false
	}
	return strings.Contains(cell, "있음") || strings.Contains(cell, "대항")
}

func hasBidRequest(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "-" || strings.Contains(cell, "없음") {
		return false
	}
	return true
}
