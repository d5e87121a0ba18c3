package summary

import (
	"reflect"
	"testing"

	"inspectbot/internal/model"
)

func TestExtractDocumentOrderAndUnsetStatus(t *testing.T) {
	doc := model.New([]model.Section{
		{Title: "Brakes", Items: []model.Item{
			{Label: "Front Brake Pads", Status: model.StatusFail, Value: "2", Unit: "mm", Notes: "metal on metal"},
			{Label: "Rear Brake Pads"},
		}},
		{Title: "Tires", Items: []model.Item{
			{Label: "Front Tires", Status: model.StatusOK, PhotoRefs: []string{"p1", "p2"}},
		}},
	})

	records := Extract(doc)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first.SectionTitle != "Brakes" || first.ItemLabel != "Front Brake Pads" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Status != model.StatusFail || first.Value != "2" || first.Unit != "mm" || first.Notes != "metal on metal" {
		t.Fatalf("unexpected first record fields: %+v", first)
	}

	// An uninspected item stays unset; it never becomes "ok" here.
	if records[1].Status != model.StatusUnset {
		t.Fatalf("record 1 status %q, want unset", records[1].Status)
	}

	if records[2].SectionTitle != "Tires" {
		t.Fatalf("records out of document order: %+v", records)
	}
	if !reflect.DeepEqual(records[2].PhotoRefs, []string{"p1", "p2"}) {
		t.Fatalf("photo refs not carried: %+v", records[2].PhotoRefs)
	}
}

func TestExtractCopiesPhotoRefs(t *testing.T) {
	doc := model.New([]model.Section{
		{Title: "Tires", Items: []model.Item{
			{Label: "Front Tires", PhotoRefs: []string{"p1"}},
		}},
	})
	records := Extract(doc)
	records[0].PhotoRefs[0] = "changed"
	if doc.Sections[0].Items[0].PhotoRefs[0] != "p1" {
		t.Fatal("record must not share photo ref storage with the document")
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	if records := Extract(model.New(nil)); len(records) != 0 {
		t.Fatalf("got %d records, want 0", len(records))
	}
}
