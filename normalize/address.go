package normalize

import (
	"regexp"
	"strings"
)

// Address holds the best-effort decomposition of a free-text address.
// Missing parts stay empty; this is a heuristic, not a geocoder.
type Address struct {
	Region       string // 시/도, full form
	RegionShort  string
	SubRegion    string // 시/군/구
	Neighborhood string // 동/읍/면/리/가
}

type region struct {
	full  string
	short string
}

// Top-level regions in source order. Matching is by exact substring of
// either form, longest names first where prefixes overlap.
var regions = []region{
	{"서울특별시", "서울"},
	{"부산광역시", "부산"},
	{"대구광역시", "대구"},
	{"인천광역시", "인천"},
	{"광주광역시", "광주"},
	{"대전광역시", "대전"},
	{"울산광역시", "울산"},
	{"세종특별자치시", "세종"},
	{"경기도", "경기"},
	{"강원특별자치도", "강원"},
	{"충청북도", "충북"},
	{"충청남도", "충남"},
	{"전북특별자치도", "전북"},
	{"전라남도", "전남"},
	{"경상북도", "경북"},
	{"경상남도", "경남"},
	{"제주특별자치도", "제주"},
}

var (
	subRegionRe    = regexp.MustCompile(`(?:^|\s)([가-힣]{1,10}(?:시|군|구))(?:\s|$)`)
	neighborhoodRe = regexp.MustCompile(`(?:^|\s)([가-힣0-9]{1,10}(?:동|읍|면|리|가))(?:\s|$)`)
)

// DecomposeAddress scans the address against the known region names, then
// looks for a municipal/district token and a neighborhood token in what
// remains.
func DecomposeAddress(addr string) Address {
	var out Address

	// Full names first: short forms like 광주 are ambiguous with district
	// names elsewhere (경기도 광주시).
	rest := addr
	for _, r := range regions {
		if i := strings.Index(rest, r.full); i >= 0 {
			out.Region = r.full
			out.RegionShort = r.short
			rest = rest[i+len(r.full):]
			break
		}
	}
	if out.Region == "" {
		for _, r := range regions {
			if i := strings.Index(rest, r.short); i >= 0 {
				out.Region = r.full
				out.RegionShort = r.short
				rest = rest[i+len(r.short):]
				break
			}
		}
	}

	if m := subRegionRe.FindStringSubmatch(rest); m != nil {
		out.SubRegion = m[1]
		if i := strings.Index(rest, m[1]); i >= 0 {
			rest = rest[i+len(m[1]):]
		}
	}
	if m := neighborhoodRe.FindStringSubmatch(rest); m != nil {
		out.Neighborhood = m[1]
	}

	return out
}
