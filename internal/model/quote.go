package model

type Provenance string

const (
	ProvenanceInspection Provenance = "inspection"
	ProvenanceManual     Provenance = "manual"
	ProvenanceAI         Provenance = "ai"
)

type PricingState string

const (
	PricingPending PricingState = "pending"
	PricingFinal   PricingState = "final"
)

// QuoteLine is a priced repair entry derived from a fail/recommend item.
// ID is assigned once at creation and never changes; it is the join key
// used by the asynchronous pricing-patch callback. SourceItem is a
// back-reference label, not an ownership pointer, and Status is copied
// from the source item at creation time rather than live-linked.
type QuoteLine struct {
	ID           string       `json:"id"`
	SourceItem   string       `json:"sourceItem"`
	Description  string       `json:"description"`
	Status       ItemStatus   `json:"status"`
	LaborHours   float64      `json:"laborHours"`
	UnitPartCost float64      `json:"unitPartCost"`
	TotalCost    float64      `json:"totalCost"`
	Provenance   Provenance   `json:"provenance"`
	Pricing      PricingState `json:"pricing,omitempty"`
}

// LineTotal computes partCost + laborHours*rate. A missing or zero labor
// rate yields the part cost alone.
func LineTotal(partCost, laborHours, laborRate float64) float64 {
	if laborRate <= 0 {
		return partCost
	}
	return partCost + laborHours*laborRate
}
