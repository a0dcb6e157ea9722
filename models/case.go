package models

import "time"

// CaseStatus is the coarse lifecycle state of an auction case.
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusSold     CaseStatus = "sold"
	CaseStatusCanceled CaseStatus = "canceled"
)

// CaseRef identifies one case to crawl.
type CaseRef struct {
	CourtCode string
	CaseNo    string
}

// CaseDetail holds the core fields of the case-detail document. It is the
// only part of a crawl that is mandatory; everything else degrades to empty.
type CaseDetail struct {
	CaseNo       string
	CourtCode    string
	CourtName    string
	CaseType     string // 사건명, e.g. 부동산임의경매
	Status       CaseStatus
	Department   string // 담당계
	Creditor     string
	Debtor       string
	ClaimAmount  *int64 // 청구금액, nil when not published
	RegisteredAt string // 개시결정일자, normalized YYYY-MM-DD
}

// PropertyRecord is one row of the property list document.
// ItemNo is 1-based and assigned in document order during extraction.
type PropertyRecord struct {
	ItemNo         int
	Usage          string // property-type label as printed, e.g. 아파트
	Address        string
	RoadAddress    string
	LandArea       *float64 // ㎡
	BuildingArea   *float64
	ExclusiveArea  *float64
	AppraisalPrice *int64
	MinimumPrice   *int64
	Remarks        string
}

// ScheduleEntry is one auction round.
type ScheduleEntry struct {
	Round      int
	SaleAt     string // normalized "YYYY-MM-DD HH:MM" (time optional)
	Kind       string // 기일종류, e.g. 매각기일
	Location   string
	MinPrice   *int64
	Result     string // free text, e.g. 유찰, 매각 (124,000,000원)
	WinningBid *int64 // derived only when the result signals a sale
}

// RightsEntry is one row of the rights register (등기부현황).
type RightsEntry struct {
	Section     string // 갑구 / 을구
	SeqNo       int
	ReceiptDate string // normalized YYYY-MM-DD
	Purpose     string // 권리종류, free text
	Holder      string
	ClaimAmount *int64
	// IsReference marks the 말소기준 entry: junior rights are extinguished
	// relative to its receipt date. WillExpire marks entries extinguished at
	// sale. Both come from substring heuristics over the remark text, not
	// from a verified legal determination.
	IsReference bool
	WillExpire  bool
}

// TenantEntry is one occupant from the survey report (임차인현황).
type TenantEntry struct {
	Name        string
	Portion     string // occupied portion description
	MoveInDate  string
	FixedDate   string // notarized (확정) date
	Deposit     *int64
	MonthlyRent *int64
	HasPriority bool // defense right against the new owner (대항력)
	BidRequest  bool // has filed a distribution claim (배당요구)
}

// AuctionCrawlData is the aggregate produced by one crawl of one case.
// It lives only for the duration of a crawl-then-save operation.
type AuctionCrawlData struct {
	Detail     CaseDetail
	Properties []PropertyRecord
	Schedules  []ScheduleEntry
	Rights     []RightsEntry
	Tenants    []TenantEntry
	Images     []string
}

// SaveResult is the outcome of one crawl-and-persist operation.
type SaveResult struct {
	CourtCode string    `json:"court_code"`
	CaseNo    string    `json:"case_no"`
	Success   bool      `json:"success"`
	RootID    string    `json:"root_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchResult summarizes one batch run. No error escapes the batch
// boundary; per-case outcomes are carried in Results.
type BatchResult struct {
	Total   int          `json:"total"`
	Success int          `json:"success"`
	Failed  int          `json:"failed"`
	Results []SaveResult `json:"results"`
}
