package crawler

import (
	"os"
	"path/filepath"
	"testing"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestExtractCaseDetail_Basic(t *testing.T) {
	detail, err := ExtractCaseDetail(loadFixture(t, "case_detail.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if detail.CaseNo != "2024타경85191" {
		t.Fatalf("expected case no 2024타경85191, got %q", detail.CaseNo)
	}
	if detail.CaseType != "부동산임의경매" {
		t.Fatalf("unexpected case type %q", detail.CaseType)
	}
	if detail.Status != "active" {
		t.Fatalf("expected status active, got %q", detail.Status)
	}
	if detail.Department != "경매5계 (02-530-1817)" {
		t.Fatalf("unexpected department %q", detail.Department)
	}
	if detail.Creditor != "주식회사 우리은행" {
		t.Fatalf("unexpected creditor %q", detail.Creditor)
	}
	if detail.Debtor != "김철수" {
		t.Fatalf("unexpected debtor %q", detail.Debtor)
	}
	if detail.ClaimAmount == nil || *detail.ClaimAmount != 1249554520 {
		t.Fatalf("unexpected claim amount %v", detail.ClaimAmount)
	}
	if detail.RegisteredAt != "2024-03-15" {
		t.Fatalf("unexpected registered date %q", detail.RegisteredAt)
	}
}

func TestExtractCaseDetail_NoCaseNumber(t *testing.T) {
	_, err := ExtractCaseDetail(loadFixture(t, "empty.html"))
	if err == nil {
		t.Fatal("expected error for document without case number")
	}
}

func TestExtractProperties_Basic(t *testing.T) {
	props, err := ExtractProperties(loadFixture(t, "properties.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(props))
	}

	p := props[0]
	if p.ItemNo != 1 {
		t.Fatalf("expected item no 1, got %d", p.ItemNo)
	}
	if p.Usage != "아파트" {
		t.Fatalf("unexpected usage %q", p.Usage)
	}
	if p.Address != "서울특별시 강남구 대치동 316 은마아파트 3동 9층 905호" {
		t.Fatalf("unexpected address %q", p.Address)
	}
	if p.RoadAddress != "서울특별시 강남구 삼성로 212" {
		t.Fatalf("unexpected road address %q", p.RoadAddress)
	}
	if p.LandArea == nil || *p.LandArea != 43.4 {
		t.Fatalf("unexpected land area %v", p.LandArea)
	}
	if p.ExclusiveArea == nil || *p.ExclusiveArea != 84.43 {
		t.Fatalf("unexpected exclusive area %v", p.ExclusiveArea)
	}
	if p.AppraisalPrice == nil || *p.AppraisalPrice != 2430000000 {
		t.Fatalf("unexpected appraisal %v", p.AppraisalPrice)
	}
	if p.MinimumPrice == nil || *p.MinimumPrice != 1944000000 {
		t.Fatalf("unexpected minimum price %v", p.MinimumPrice)
	}

	p = props[1]
	if p.ItemNo != 2 {
		t.Fatalf("expected item no 2, got %d", p.ItemNo)
	}
	if p.RoadAddress != "" {
		t.Fatalf("expected no road address, got %q", p.RoadAddress)
	}
	if p.BuildingArea != nil {
		t.Fatalf("expected nil building area, got %v", p.BuildingArea)
	}
	if p.Remarks != "제시외 건물 포함" {
		t.Fatalf("unexpected remarks %q", p.Remarks)
	}
}

func TestExtractProperties_EmptyDocument(t *testing.T) {
	props, err := ExtractProperties(loadFixture(t, "empty.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(props) != 0 {
		t.Fatalf("expected no properties, got %d", len(props))
	}
}

func TestExtractSchedule_Basic(t *testing.T) {
	entries, err := ExtractSchedule(loadFixture(t, "schedule.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	e := entries[0]
	if e.Round != 1 {
		t.Fatalf("expected round 1, got %d", e.Round)
	}
	if e.SaleAt != "2025-01-14 10:00" {
		t.Fatalf("unexpected sale date %q", e.SaleAt)
	}
	if e.Result != "유찰" {
		t.Fatalf("unexpected result %q", e.Result)
	}
	if e.WinningBid != nil {
		t.Fatalf("failed round should have no winning bid, got %v", e.WinningBid)
	}

	e = entries[1]
	if e.WinningBid == nil || *e.WinningBid != 2055000000 {
		t.Fatalf("unexpected winning bid %v", e.WinningBid)
	}
	if e.MinPrice == nil || *e.MinPrice != 1944000000 {
		t.Fatalf("unexpected min price %v", e.MinPrice)
	}

	e = entries[2]
	if e.Round != 3 {
		t.Fatalf("expected round 3, got %d", e.Round)
	}
	if e.Kind != "매각결정기일" {
		t.Fatalf("unexpected kind %q", e.Kind)
	}
	if e.MinPrice != nil {
		t.Fatalf("expected nil min price, got %v", e.MinPrice)
	}
}

func TestExtractRights_Flags(t *testing.T) {
	entries, err := ExtractRights(loadFixture(t, "rights.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	e := entries[0]
	if e.Section != "을구" || e.SeqNo != 1 {
		t.Fatalf("unexpected section/seq %q/%d", e.Section, e.SeqNo)
	}
	if !e.IsReference {
		t.Fatal("first mortgage should be the reference right")
	}
	if !e.WillExpire {
		t.Fatal("reference right marked 소멸 should expire")
	}
	if e.ReceiptDate != "2019-06-27" {
		t.Fatalf("unexpected receipt date %q", e.ReceiptDate)
	}
	if e.ClaimAmount == nil || *e.ClaimAmount != 1440000000 {
		t.Fatalf("unexpected claim amount %v", e.ClaimAmount)
	}

	if entries[1].IsReference {
		t.Fatal("second mortgage should not be the reference right")
	}
	if !entries[1].WillExpire {
		t.Fatal("junior mortgage should expire")
	}

	e = entries[2]
	if e.WillExpire {
		t.Fatal("entry marked 인수 must not read as expiring")
	}
	if e.ClaimAmount != nil {
		t.Fatalf("expected nil claim amount, got %v", e.ClaimAmount)
	}
}

func TestExtractRights_ReorderedColumns(t *testing.T) {
	entries, err := ExtractRights(loadFixture(t, "rights_reordered.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Section != "을구" || e.SeqNo != 1 {
		t.Fatalf("column order should not shift fields, got %q/%d", e.Section, e.SeqNo)
	}
	if e.Holder != "주식회사 우리은행" {
		t.Fatalf("unexpected holder %q", e.Holder)
	}
	if !e.IsReference || !e.WillExpire {
		t.Fatal("flags should survive reordered columns")
	}
	if e.ClaimAmount == nil || *e.ClaimAmount != 1440000000 {
		t.Fatalf("unexpected claim amount %v", e.ClaimAmount)
	}
}

func TestExtractTenants_Flags(t *testing.T) {
	tenants, err := ExtractTenants(loadFixture(t, "tenants.html"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(tenants) != 2 {
		t.Fatalf("expected 2 tenants, got %d", len(tenants))
	}

	tn := tenants[0]
	if tn.Name != "이민준" {
		t.Fatalf("unexpected name %q", tn.Name)
	}
	if !tn.HasPriority {
		t.Fatal("tenant with 있음 should have priority")
	}
	if !tn.BidRequest {
		t.Fatal("tenant with filed claim should have bid request")
	}
	if tn.MoveInDate != "2018-03-05" {
		t.Fatalf("unexpected move-in date %q", tn.MoveInDate)
	}
	if tn.Deposit == nil || *tn.Deposit != 850000000 {
		t.Fatalf("unexpected deposit %v", tn.Deposit)
	}
	if tn.MonthlyRent != nil {
		t.Fatalf("expected nil rent, got %v", tn.MonthlyRent)
	}

	tn = tenants[1]
	if tn.HasPriority {
		t.Fatal("tenant with 없음 should not have priority")
	}
	if tn.BidRequest {
		t.Fatal("dash cell should not read as bid request")
	}
	if tn.FixedDate != "" {
		t.Fatalf("expected empty fixed date, got %q", tn.FixedDate)
	}
	if tn.MonthlyRent == nil || *tn.MonthlyRent != 1500000 {
		t.Fatalf("unexpected rent %v", tn.MonthlyRent)
	}
}

func TestTenantPriorityCell(t *testing.T) {
	cases := []struct {
		cell string
		want bool
	}{
		{"있음", true},
		{"대항력 있음", true},
		{"대항요건 구비", true},
		{"대항력 없음", false},
		{"없음", false},
		{"미상", false},
		{"-", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := hasPriority(tc.cell); got != tc.want {
			t.Errorf("hasPriority(%q) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestExtractImages_AbsoluteAndDeduped(t *testing.T) {
	urls, err := ExtractImages(loadFixture(t, "documents.html"), "https://www.courtauction.go.kr")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(urls) != 3 {
		t.Fatalf("expected 3 unique urls, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://www.courtauction.go.kr/RetrieveImage.laf?fileId=IMG001" {
		t.Fatalf("unexpected first url %s", urls[0])
	}
	if urls[2] != "https://static.courtauction.go.kr/photo/IMG003.jpg" {
		t.Fatalf("unexpected third url %s", urls[2])
	}
}
