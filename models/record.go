package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AuctionCase is the persisted root row. Uniquely identified by
// (court_code, case_no); re-crawls update the same row.
type AuctionCase struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CourtCode    string     `json:"court_code" db:"court_code"`
	CaseNo       string     `json:"case_no" db:"case_no"`
	CourtName    string     `json:"court_name" db:"court_name"`
	CaseType     string     `json:"case_type" db:"case_type"`
	Status       string     `json:"status" db:"status"`
	Department   string     `json:"department" db:"department"`
	Creditor     string     `json:"creditor" db:"creditor"`
	Debtor       string     `json:"debtor" db:"debtor"`
	ClaimAmount  *int64     `json:"claim_amount" db:"claim_amount"`
	RegisteredAt *time.Time `json:"registered_at" db:"registered_at"`

	// Address decomposition of the first property (best effort).
	Region       string `json:"region" db:"region"`
	SubRegion    string `json:"sub_region" db:"sub_region"`
	Neighborhood string `json:"neighborhood" db:"neighborhood"`
	Address      string `json:"address" db:"address"`
	RoadAddress  string `json:"road_address" db:"road_address"`

	PropertyType  string   `json:"property_type" db:"property_type"`
	LandArea      *float64 `json:"land_area" db:"land_area"`
	BuildingArea  *float64 `json:"building_area" db:"building_area"`
	ExclusiveArea *float64 `json:"exclusive_area" db:"exclusive_area"`

	AppraisalPrice *int64     `json:"appraisal_price" db:"appraisal_price"`
	MinPrice       *int64     `json:"min_price" db:"min_price"`
	Deposit        *int64     `json:"deposit" db:"deposit"`
	SaleAt         *time.Time `json:"sale_at" db:"sale_at"`
	SaleLocation   string     `json:"sale_location" db:"sale_location"`
	FailedCount    int        `json:"failed_count" db:"failed_count"`

	HasRisk  bool   `json:"has_risk" db:"has_risk"`
	RiskNote string `json:"risk_note" db:"risk_note"`

	// Full property list and photo URLs, kept as documents on the root.
	Properties json.RawMessage `json:"properties" db:"properties"`
	Photos     json.RawMessage `json:"photos" db:"photos"`

	Remarks   string    `json:"remarks" db:"remarks"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CaseSchedule is a replace-on-write child row of auction_cases.
type CaseSchedule struct {
	ID         int64      `json:"id" db:"id"`
	CaseID     uuid.UUID  `json:"case_id" db:"case_id"`
	RoundNo    int        `json:"round_no" db:"round_no"`
	SaleAt     *time.Time `json:"sale_at" db:"sale_at"`
	Kind       string     `json:"kind" db:"kind"`
	Location   string     `json:"location" db:"location"`
	MinPrice   *int64     `json:"min_price" db:"min_price"`
	Result     string     `json:"result" db:"result"`
	WinningBid *int64     `json:"winning_bid" db:"winning_bid"`
}

// CaseRight is a replace-on-write child row of auction_cases.
type CaseRight struct {
	ID          int64      `json:"id" db:"id"`
	CaseID      uuid.UUID  `json:"case_id" db:"case_id"`
	Section     string     `json:"section" db:"section"`
	SeqNo       int        `json:"seq_no" db:"seq_no"`
	ReceiptDate *time.Time `json:"receipt_date" db:"receipt_date"`
	Purpose     string     `json:"purpose" db:"purpose"`
	Holder      string     `json:"holder" db:"holder"`
	ClaimAmount *int64     `json:"claim_amount" db:"claim_amount"`
	IsReference bool       `json:"is_reference" db:"is_reference"`
	WillExpire  bool       `json:"will_expire" db:"will_expire"`
}

// CaseAnalysis is the risk-analysis row; case_id is its primary key, so
// there is at most one per case. Tenants are embedded as a document rather
// than a separate child table.
type CaseAnalysis struct {
	CaseID     uuid.UUID       `json:"case_id" db:"case_id"`
	HasRisk    bool            `json:"has_risk" db:"has_risk"`
	Note       string          `json:"note" db:"note"`
	Tenants    json.RawMessage `json:"tenants" db:"tenants"`
	AnalyzedAt time.Time       `json:"analyzed_at" db:"analyzed_at"`
}

// CasePhoto is one archival entry in the photo download queue.
type CasePhoto struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CaseID      uuid.UUID `json:"case_id" db:"case_id"`
	OriginalURL string    `json:"original_url" db:"original_url"`
	Position    int       `json:"position" db:"position"`
	S3Key       *string   `json:"s3_key" db:"s3_key"`
	ArchiveURL  *string   `json:"archive_url" db:"archive_url"`
	ContentHash string    `json:"content_hash" db:"content_hash"`
	Status      string    `json:"status" db:"status"`
	Attempts    int       `json:"attempts" db:"attempts"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Photo status
const (
	PhotoStatusPending  = "pending"
	PhotoStatusUploaded = "uploaded"
	PhotoStatusFailed   = "failed"
)
