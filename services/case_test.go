package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/onsia-realty/auction-crawler/models"
)

type fakeStore struct {
	upsertErr   error
	scheduleErr error
	rightsErr   error
	analysisErr error
	photosErr   error

	upserted  *models.AuctionCase
	schedules []models.CaseSchedule
	rights    []models.CaseRight
	analysis  *models.CaseAnalysis
	photoURLs []string
}

func (f *fakeStore) UpsertCase(ctx context.Context, c *models.AuctionCase) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = c
	return nil
}

func (f *fakeStore) ReplaceSchedules(ctx context.Context, caseID uuid.UUID, entries []models.CaseSchedule) error {
	if f.scheduleErr != nil {
		return f.scheduleErr
	}
	f.schedules = entries
	return nil
}

func (f *fakeStore) ReplaceRights(ctx context.Context, caseID uuid.UUID, entries []models.CaseRight) error {
	if f.rightsErr != nil {
		return f.rightsErr
	}
	f.rights = entries
	return nil
}

func (f *fakeStore) UpsertAnalysis(ctx context.Context, a *models.CaseAnalysis) error {
	if f.analysisErr != nil {
		return f.analysisErr
	}
	f.analysis = a
	return nil
}

func (f *fakeStore) EnqueuePhotos(ctx context.Context, caseID uuid.UUID, urls []string) error {
	if f.photosErr != nil {
		return f.photosErr
	}
	f.photoURLs = urls
	return nil
}

func crawlData() *models.AuctionCrawlData {
	return &models.AuctionCrawlData{
		Detail: models.CaseDetail{
			CaseNo:    "2024타경85191",
			CourtCode: "B000210",
			CourtName: "서울중앙지방법원",
			Status:    models.CaseStatusActive,
		},
		Schedules: []models.ScheduleEntry{{Round: 1, SaleAt: "2025-01-14 10:00", Result: "유찰"}},
		Rights:    []models.RightsEntry{{Section: "을구", SeqNo: 1, IsReference: true}},
		Tenants:   []models.TenantEntry{{Name: "이민준"}},
		Images:    []string{"https://example.test/a.jpg"},
	}
}

func TestSave_FullFanOut(t *testing.T) {
	store := &fakeStore{}
	svc := NewCaseService(store)

	result := svc.Save(context.Background(), crawlData())

	if !result.Success {
		t.Fatalf("save failed: %s", result.Error)
	}
	if result.Error != "" {
		t.Fatalf("unexpected partial error: %s", result.Error)
	}
	if store.upserted == nil {
		t.Fatal("root row was not written")
	}
	if result.RootID != store.upserted.ID.String() {
		t.Fatalf("result id %s does not match row id %s", result.RootID, store.upserted.ID)
	}
	if len(store.schedules) != 1 || store.schedules[0].CaseID != store.upserted.ID {
		t.Fatal("schedule rows should carry the root id")
	}
	if len(store.rights) != 1 || store.rights[0].CaseID != store.upserted.ID {
		t.Fatal("rights rows should carry the root id")
	}
	if store.analysis == nil || store.analysis.CaseID != store.upserted.ID {
		t.Fatal("analysis row should carry the root id")
	}
	if len(store.photoURLs) != 1 {
		t.Fatalf("expected 1 photo enqueued, got %d", len(store.photoURLs))
	}
}

func TestSave_RootFailureIsFatal(t *testing.T) {
	store := &fakeStore{upsertErr: errors.New("connection refused")}
	svc := NewCaseService(store)

	result := svc.Save(context.Background(), crawlData())

	if result.Success {
		t.Fatal("root failure must not report success")
	}
	if !strings.Contains(result.Error, "connection refused") {
		t.Fatalf("unexpected error %q", result.Error)
	}
	if store.schedules != nil || store.rights != nil || store.analysis != nil {
		t.Fatal("no child writes should happen after a root failure")
	}
}

func TestSave_ChildFailureIsPartial(t *testing.T) {
	store := &fakeStore{
		scheduleErr: errors.New("deadlock"),
		analysisErr: errors.New("constraint"),
	}
	svc := NewCaseService(store)

	result := svc.Save(context.Background(), crawlData())

	if !result.Success {
		t.Fatal("child failures must not sink the save")
	}
	if !strings.Contains(result.Error, "schedules") || !strings.Contains(result.Error, "analysis") {
		t.Fatalf("partial error should name the failed steps, got %q", result.Error)
	}
	if len(store.rights) != 1 {
		t.Fatal("later children should still be written")
	}
	if len(store.photoURLs) != 1 {
		t.Fatal("photos should still be enqueued")
	}
}

func TestSave_NoPhotosSkipsQueue(t *testing.T) {
	store := &fakeStore{photosErr: errors.New("should not be called")}
	svc := NewCaseService(store)

	data := crawlData()
	data.Images = nil

	result := svc.Save(context.Background(), data)
	if !result.Success || result.Error != "" {
		t.Fatalf("unexpected result %+v", result)
	}
}
