package crawler

import (
	"net/url"
	"strconv"

	"github.com/onsia-realty/auction-crawler/caseno"
)

// DocKind addresses one of the per-case document pages served by the
// auction source.
type DocKind int

const (
	DocDetail     DocKind = iota // 사건기본내역
	DocProperties                // 물건내역
	DocSchedule                  // 기일내역
	DocRights                    // 등기부현황
	DocTenants                   // 현황조사 (임차인)
	DocStatement                 // 매각물건명세서
	DocDocuments                 // 문건/사진내역
)

func (k DocKind) String() string {
	switch k {
	case DocDetail:
		return "detail"
	case DocProperties:
		return "properties"
	case DocSchedule:
		return "schedule"
	case DocRights:
		return "rights"
	case DocTenants:
		return "tenants"
	case DocStatement:
		return "statement"
	case DocDocuments:
		return "documents"
	}
	return "unknown"
}

// docPages maps each document kind to its page on the source. The source
// is a legacy system; these paths are not a versioned contract.
var docPages = map[DocKind]string{
	DocDetail:     "RetrieveRealEstSaBasicInfo.laf",
	DocProperties: "RetrieveRealEstMulDetailList.laf",
	DocSchedule:   "RetrieveRealEstSaleDateList.laf",
	DocRights:     "RetrieveRealEstRgstInfoList.laf",
	DocTenants:    "RetrieveRealEstLeaseInfoList.laf",
	DocStatement:  "RetrieveRealEstMulObjInfo.laf",
	DocDocuments:  "RetrieveRealEstPhotoList.laf",
}

// EndpointURL builds the fully-qualified address for one document of one
// case. Pure function; the identifier's absence is handled by the caller.
func EndpointURL(baseURL, courtCode string, id caseno.CaseID, kind DocKind) string {
	q := url.Values{}
	q.Set("jiwonCd", courtCode)
	q.Set("saYear", strconv.Itoa(id.Year))
	q.Set("saSe", strconv.Itoa(id.SaType))
	q.Set("saSer", id.Seq)
	return baseURL + "/" + docPages[kind] + "?" + q.Encode()
}
