package normalize

import "github.com/onsia-realty/auction-crawler/models"

// RiskNote is attached whenever the register or the tenant set signals an
// encumbrance a buyer would inherit. One fixed advisory text; per-entry
// explanations are not derived.
const RiskNote = "말소기준권리 또는 대항력 있는 임차인이 확인되어 인수 부담이 발생할 수 있습니다. 권리분석 확인이 필요합니다."

// DeriveRisk computes the encumbrance flag from the rights register and
// the tenant set. The note is empty when no risk is flagged.
func DeriveRisk(rights []models.RightsEntry, tenants []models.TenantEntry) (bool, string) {
	for _, r := range rights {
		if r.IsReference {
			return true, RiskNote
		}
	}
	for _, t := range tenants {
		if t.HasPriority {
			return true, RiskNote
		}
	}
	return false, ""
}
