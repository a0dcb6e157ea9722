package crawler

import (
	"strings"

	"github.com/onsia-realty/auction-crawler/models"
)

const roadAddrMarker = "[도로명주소]"

// ExtractProperties parses the property-list document. Zero rows is a
// legitimate result; the item index is 1-based document order.
func ExtractProperties(html string) ([]models.PropertyRecord, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "properties", Err: err}
	}

	var props []models.PropertyRecord
	for i, row := range listRows(doc) {
		addr, road := splitRoadAddress(row["소재지"])
		props = append(props, models.PropertyRecord{
			ItemNo:         i + 1,
			Usage:          row["용도"],
			Address:        addr,
			RoadAddress:    road,
			LandArea:       rowArea(row, "토지면적"),
			BuildingArea:   rowArea(row, "건물면적"),
			ExclusiveArea:  rowArea(row, "전유면적"),
			AppraisalPrice: rowPrice(row, "감정평가액"),
			MinimumPrice:   rowPrice(row, "최저매각가격"),
			Remarks:        row["비고"],
		})
	}
	return props, nil
}

// splitRoadAddress separates the lot-number address from the road-form
// address the source appends behind a marker in the same cell.
func splitRoadAddress(s string) (addr, road string) {
	if i := strings.Index(s, roadAddrMarker); i >= 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(roadAddrMarker):])
	}
	return strings.TrimSpace(s), ""
}
