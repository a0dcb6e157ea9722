package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onsia-realty/auction-crawler/models"
	"github.com/onsia-realty/auction-crawler/normalize"
)

// Store is the persistence surface the save flow needs.
type Store interface {
	UpsertCase(ctx context.Context, c *models.AuctionCase) error
	ReplaceSchedules(ctx context.Context, caseID uuid.UUID, entries []models.CaseSchedule) error
	ReplaceRights(ctx context.Context, caseID uuid.UUID, entries []models.CaseRight) error
	UpsertAnalysis(ctx context.Context, a *models.CaseAnalysis) error
	EnqueuePhotos(ctx context.Context, caseID uuid.UUID, urls []string) error
}

// CaseService fans one crawl aggregate out to the relational tables.
type CaseService struct {
	store Store
}

func NewCaseService(store Store) *CaseService {
	return &CaseService{store: store}
}

// Save persists one crawl aggregate. The root upsert is the only fatal
// step; child-table failures are logged, recorded on the result, and do
// not undo the root write. Success reports whether the root row landed.
func (s *CaseService) Save(ctx context.Context, data *models.AuctionCrawlData) models.SaveResult {
	result := models.SaveResult{
		CourtCode: data.Detail.CourtCode,
		CaseNo:    data.Detail.CaseNo,
		Timestamp: time.Now(),
	}

	recs := normalize.BuildRecords(data, result.Timestamp)

	if err := s.store.UpsertCase(ctx, recs.Case); err != nil {
		result.Error = (&PersistenceError{Step: "case", Err: err}).Error()
		return result
	}
	result.Success = true
	result.RootID = recs.Case.ID.String()
	caseID := recs.Case.ID

	var childErrs []*PersistenceError
	childErr := func(step string, err error) {
		perr := &PersistenceError{Step: step, Err: err}
		log.Printf("Warning: save %s for %s: %v", step, data.Detail.CaseNo, err)
		childErrs = append(childErrs, perr)
	}

	for i := range recs.Schedules {
		recs.Schedules[i].CaseID = caseID
	}
	if err := s.store.ReplaceSchedules(ctx, caseID, recs.Schedules); err != nil {
		childErr("schedules", err)
	}

	for i := range recs.Rights {
		recs.Rights[i].CaseID = caseID
	}
	if err := s.store.ReplaceRights(ctx, caseID, recs.Rights); err != nil {
		childErr("rights", err)
	}

	recs.Analysis.CaseID = caseID
	if err := s.store.UpsertAnalysis(ctx, recs.Analysis); err != nil {
		childErr("analysis", err)
	}

	if len(data.Images) > 0 {
		if err := s.store.EnqueuePhotos(ctx, caseID, data.Images); err != nil {
			childErr("photos", err)
		}
	}

	if len(childErrs) > 0 {
		parts := make([]string, len(childErrs))
		for i, e := range childErrs {
			parts[i] = e.Error()
		}
		result.Error = "partial: " + strings.Join(parts, "; ")
	}
	return result
}
