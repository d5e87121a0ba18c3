// Package quote derives priced quote lines from fail/recommend inspection
// items by matching them against the shop catalog.
package quote

import (
	"strings"

	"github.com/google/uuid"

	"inspectbot/internal/catalog"
	"inspectbot/internal/model"
)

// BuildQuoteLines scans every item whose status is fail or recommend and
// matches the item label plus each free-text recommendation independently
// against the catalog, so one item can yield zero, one, or several lines.
// The match rule is case-insensitive substring containment of the catalog
// name inside the key text; the first catalog entry wins, in catalog
// order. A key with no match emits nothing; that is the expected
// "needs manual pricing" steady state, not an error.
func BuildQuoteLines(doc model.Document, entries []catalog.Entry, laborRate float64) []model.QuoteLine {
	var lines []model.QuoteLine
	for _, sec := range doc.Sections {
		for _, it := range sec.Items {
			if it.Status != model.StatusFail && it.Status != model.StatusRecommend {
				continue
			}
			keys := append([]string{it.Label}, it.Recommendations...)
			for _, key := range keys {
				entry, ok := matchEntry(key, entries)
				if !ok {
					continue
				}
				lines = append(lines, model.QuoteLine{
					ID:           uuid.NewString(),
					SourceItem:   it.Label,
					Description:  entry.CanonicalName,
					Status:       it.Status,
					LaborHours:   entry.LaborHours,
					UnitPartCost: entry.PartCost,
					TotalCost:    model.LineTotal(entry.PartCost, entry.LaborHours, laborRate),
					Provenance:   model.ProvenanceInspection,
					Pricing:      model.PricingFinal,
				})
			}
		}
	}
	return lines
}

func matchEntry(key string, entries []catalog.Entry) (catalog.Entry, bool) {
	text := strings.ToLower(strings.TrimSpace(key))
	if text == "" {
		return catalog.Entry{}, false
	}
	for _, e := range entries {
		name := strings.ToLower(strings.TrimSpace(e.CanonicalName))
		if name != "" && strings.Contains(text, name) {
			return e, true
		}
	}
	return catalog.Entry{}, false
}
