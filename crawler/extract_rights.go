package crawler

import (
	"strconv"
	"strings"

	"github.com/onsia-realty/auction-crawler/models"
)

// ExtractRights parses the rights-register document (등기부현황).
// The reference/expiry flags are substring heuristics over the remark
// text; phrasing variants the source has not been seen to use will read
// as false.
func ExtractRights(html string) ([]models.RightsEntry, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "rights", Err: err}
	}

	var entries []models.RightsEntry
	for _, row := range listRows(doc) {
		remark := row["비고"]
		entry := models.RightsEntry{
			Section:     row["구분"],
			ReceiptDate: rowDate(row, "접수일자"),
			Purpose:     row["권리종류"],
			Holder:      row["권리자"],
			ClaimAmount: rowPrice(row, "채권금액"),
			IsReference: strings.Contains(remark, "말소기준"),
			WillExpire:  strings.Contains(remark, "소멸") && !strings.Contains(remark, "인수"),
		}
		if n, err := strconv.Atoi(strings.TrimSpace(row["순위"])); err == nil {
			entry.SeqNo = n
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
