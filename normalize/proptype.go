package normalize

import "strings"

// Canonical property types.
const (
	PropApartment      = "apartment"
	PropMultiHousehold = "multi_household"
	PropDetachedHouse  = "detached_house"
	PropOfficetel      = "officetel"
	PropCommercial     = "commercial"
	PropIndustrial     = "industrial"
	PropLand           = "land"
	PropOther          = "other"
)

type propRule struct {
	keyword string
	canon   string
}

// Ordered: first match wins, so the more specific labels come first
// (주상복합 contains 상가-adjacent usage but sells like an apartment).
var propRules = []propRule{
	{"주상복합", PropApartment},
	{"아파트", PropApartment},
	{"다세대", PropMultiHousehold},
	{"연립", PropMultiHousehold},
	{"빌라", PropMultiHousehold},
	{"다가구", PropDetachedHouse},
	{"단독", PropDetachedHouse},
	{"주택", PropDetachedHouse},
	{"오피스텔", PropOfficetel},
	{"근린", PropCommercial},
	{"상가", PropCommercial},
	{"점포", PropCommercial},
	{"사무실", PropCommercial},
	{"공장", PropIndustrial},
	{"창고", PropIndustrial},
	{"대지", PropLand},
	{"토지", PropLand},
	{"임야", PropLand},
	{"전답", PropLand},
}

// CanonicalPropertyType maps a free-text usage label onto the closed
// vocabulary; unmatched input passes through as "other".
func CanonicalPropertyType(label string) string {
	for _, r := range propRules {
		if strings.Contains(label, r.keyword) {
			return r.canon
		}
	}
	return PropOther
}
