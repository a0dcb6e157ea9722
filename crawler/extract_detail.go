package crawler

import (
	"errors"
	"strings"

	"github.com/onsia-realty/auction-crawler/models"
)

// ExtractCaseDetail parses the case-detail document. This is the one
// extractor whose failure aborts the whole crawl, so a document without a
// recognizable case number is an error rather than an empty result.
func ExtractCaseDetail(html string) (*models.CaseDetail, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, &ExtractionError{Doc: "detail", Err: err}
	}

	fields := detailFields(doc)

	caseNo := fields["사건번호"]
	if i := strings.IndexByte(caseNo, ' '); i > 0 {
		caseNo = caseNo[:i] // drop decorations like "[전자]"
	}
	if caseNo == "" {
		return nil, &ExtractionError{Doc: "detail", Err: errors.New("case number not found")}
	}

	detail := &models.CaseDetail{
		CaseNo:     caseNo,
		CaseType:   fields["사건명"],
		Department: fields["담당계"],
		Creditor:   fields["채권자"],
		Debtor:     fields["채무자"],
		Status:     statusFromResult(fields["종국결과"]),
	}

	if v, ok := ParsePrice(fields["청구금액"]); ok {
		detail.ClaimAmount = &v
	}
	if v, ok := NormalizeDate(fields["개시결정일자"]); ok {
		detail.RegisteredAt = v
	} else if v, ok := NormalizeDate(fields["접수일자"]); ok {
		detail.RegisteredAt = v
	}

	return detail, nil
}

// statusFromResult maps the 종국결과 cell to the coarse case status. An
// empty cell means the proceeding is still open.
func statusFromResult(result string) models.CaseStatus {
	switch {
	case result == "":
		return models.CaseStatusActive
	case strings.Contains(result, "매각") || strings.Contains(result, "낙찰") ||
		strings.Contains(result, "배당종결"):
		return models.CaseStatusSold
	case strings.Contains(result, "취하") || strings.Contains(result, "기각") ||
		strings.Contains(result, "각하") || strings.Contains(result, "취소"):
		return models.CaseStatusCanceled
	}
	return models.CaseStatusActive
}
