// Package summary flattens an inspection document into a linear record
// list for reporting and export collaborators.
package summary

import "inspectbot/internal/model"

// Record is one item flattened with its section context.
type Record struct {
	SectionTitle string           `json:"sectionTitle"`
	ItemLabel    string           `json:"itemLabel"`
	Status       model.ItemStatus `json:"status"`
	Notes        string           `json:"notes,omitempty"`
	Value        string           `json:"value,omitempty"`
	Unit         string           `json:"unit,omitempty"`
	PhotoRefs    []string         `json:"photoRefs,omitempty"`
}

// Extract emits one record per item in document order. Unset status is
// preserved verbatim; whether "never inspected" displays as a pass is the
// renderer's decision, not the engine's.
func Extract(doc model.Document) []Record {
	var out []Record
	for _, sec := range doc.Sections {
		for _, it := range sec.Items {
			out = append(out, Record{
				SectionTitle: sec.Title,
				ItemLabel:    it.Label,
				Status:       it.Status,
				Notes:        it.Notes,
				Value:        it.Value,
				Unit:         it.Unit,
				PhotoRefs:    append([]string(nil), it.PhotoRefs...),
			})
		}
	}
	return out
}
