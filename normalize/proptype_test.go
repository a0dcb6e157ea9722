package normalize

import "testing"

func TestCanonicalPropertyType(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"아파트", PropApartment},
		{"주상복합(아파트)", PropApartment},
		{"다세대주택", PropMultiHousehold},
		{"연립주택", PropMultiHousehold},
		{"빌라", PropMultiHousehold},
		{"단독주택", PropDetachedHouse},
		{"다가구주택", PropDetachedHouse},
		{"오피스텔", PropOfficetel},
		{"근린시설", PropCommercial},
		{"상가", PropCommercial},
		{"점포 및 사무실", PropCommercial},
		{"공장", PropIndustrial},
		{"창고시설", PropIndustrial},
		{"대지", PropLand},
		{"임야", PropLand},
		{"전답", PropLand},
		{"기타", PropOther},
		{"", PropOther},
		{"선박", PropOther},
	}

	for _, tt := range tests {
		if got := CanonicalPropertyType(tt.label); got != tt.want {
			t.Errorf("CanonicalPropertyType(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
