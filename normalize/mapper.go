// Package normalize converts the loosely-typed crawl aggregate into the
// relational write model: address decomposition, property-type
// canonicalization, round derivation, and risk analysis.
package normalize

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/onsia-realty/auction-crawler/models"
)

// CaseRecords is the full write shape for one case.
type CaseRecords struct {
	Case      *models.AuctionCase
	Schedules []models.CaseSchedule
	Rights    []models.CaseRight
	Analysis  *models.CaseAnalysis
}

// BuildRecords maps a crawl aggregate onto the relational model. The
// first property supplies the root row's address and type fields; the
// full property list and the photo URLs ride along as documents.
func BuildRecords(data *models.AuctionCrawlData, now time.Time) *CaseRecords {
	d := data.Detail

	c := &models.AuctionCase{
		ID:           uuid.New(),
		CourtCode:    d.CourtCode,
		CaseNo:       d.CaseNo,
		CourtName:    d.CourtName,
		CaseType:     d.CaseType,
		Status:       string(d.Status),
		Department:   d.Department,
		Creditor:     d.Creditor,
		Debtor:       d.Debtor,
		ClaimAmount:  d.ClaimAmount,
		RegisteredAt: ParseDate(d.RegisteredAt),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if len(data.Properties) > 0 {
		p := data.Properties[0]
		addr := DecomposeAddress(p.Address)
		c.Region = addr.Region
		c.SubRegion = addr.SubRegion
		c.Neighborhood = addr.Neighborhood
		c.Address = p.Address
		c.RoadAddress = p.RoadAddress
		c.PropertyType = CanonicalPropertyType(p.Usage)
		c.LandArea = p.LandArea
		c.BuildingArea = p.BuildingArea
		c.ExclusiveArea = p.ExclusiveArea
		c.AppraisalPrice = p.AppraisalPrice
		c.MinPrice = p.MinimumPrice
		c.Remarks = p.Remarks
	}

	if latest := LatestSchedule(data.Schedules); latest != nil {
		c.SaleAt = ParseDateTime(latest.SaleAt)
		c.SaleLocation = latest.Location
		if latest.MinPrice != nil {
			c.MinPrice = latest.MinPrice
		}
	}
	if c.MinPrice != nil {
		dep := *c.MinPrice / 10 // deposit defaults to 10% of the minimum
		c.Deposit = &dep
	}
	c.FailedCount = FailedRoundCount(data.Schedules)

	hasRisk, note := DeriveRisk(data.Rights, data.Tenants)
	c.HasRisk = hasRisk
	c.RiskNote = note

	c.Properties = marshalOrNull(data.Properties)
	c.Photos = marshalOrNull(data.Images)

	recs := &CaseRecords{Case: c}

	for _, e := range data.Schedules {
		recs.Schedules = append(recs.Schedules, models.CaseSchedule{
			RoundNo:    e.Round,
			SaleAt:     ParseDateTime(e.SaleAt),
			Kind:       e.Kind,
			Location:   e.Location,
			MinPrice:   e.MinPrice,
			Result:     e.Result,
			WinningBid: e.WinningBid,
		})
	}
	for _, r := range data.Rights {
		recs.Rights = append(recs.Rights, models.CaseRight{
			Section:     r.Section,
			SeqNo:       r.SeqNo,
			ReceiptDate: ParseDate(r.ReceiptDate),
			Purpose:     r.Purpose,
			Holder:      r.Holder,
			ClaimAmount: r.ClaimAmount,
			IsReference: r.IsReference,
			WillExpire:  r.WillExpire,
		})
	}

	recs.Analysis = &models.CaseAnalysis{
		HasRisk:    hasRisk,
		Note:       note,
		Tenants:    marshalOrNull(data.Tenants),
		AnalyzedAt: now,
	}

	return recs
}

func marshalOrNull(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
