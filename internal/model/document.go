package model

import "reflect"

type DocStatus string

const (
	DocNotStarted     DocStatus = "not_started"
	DocInProgress     DocStatus = "in_progress"
	DocPaused         DocStatus = "paused"
	DocCompleted      DocStatus = "completed"
	DocReadyForReview DocStatus = "ready_for_review"
)

type ItemStatus string

// StatusUnset means the item has not been inspected yet. It is a distinct
// state and must never be collapsed into "ok" inside the engine; display
// defaulting belongs to the renderer.
const (
	StatusUnset     ItemStatus = ""
	StatusOK        ItemStatus = "ok"
	StatusFail      ItemStatus = "fail"
	StatusNA        ItemStatus = "na"
	StatusRecommend ItemStatus = "recommend"
)

// ValidItemStatus reports whether s is one of the four settable status
// tokens. Unset is not settable from external payloads.
func ValidItemStatus(s string) bool {
	switch ItemStatus(s) {
	case StatusOK, StatusFail, StatusNA, StatusRecommend:
		return true
	}
	return false
}

// Item is one inspection checkpoint within a section.
type Item struct {
	Label           string     `json:"label"`
	Status          ItemStatus `json:"status,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Value           string     `json:"value,omitempty"`
	Unit            string     `json:"unit,omitempty"`
	PhotoRefs       []string   `json:"photoRefs,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// Section is a named ordered group of items. Title doubles as the resolver
// lookup key and is unique within a document.
type Section struct {
	Title  string     `json:"title"`
	Items  []Item     `json:"items"`
	Status ItemStatus `json:"status,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

// Document is the root aggregate for one inspection session. It is a plain
// value: the dispatcher never mutates it in place, callers always rebind to
// the returned document.
type Document struct {
	Sections       []Section   `json:"sections"`
	CurrentSection int         `json:"currentSectionIndex"`
	CurrentItem    int         `json:"currentItemIndex"`
	Status         DocStatus   `json:"status"`
	Quote          []QuoteLine `json:"quote,omitempty"`
}

// New builds a not-started document over the given sections. The cursor
// starts at the first item.
func New(sections []Section) Document {
	doc := Document{
		Sections: sections,
		Status:   DocNotStarted,
	}
	return ClampCursor(doc)
}

// ClampCursor forces the cursor back inside valid bounds. Empty documents
// keep a zero cursor.
func ClampCursor(doc Document) Document {
	if len(doc.Sections) == 0 {
		doc.CurrentSection, doc.CurrentItem = 0, 0
		return doc
	}
	if doc.CurrentSection < 0 {
		doc.CurrentSection = 0
	}
	if doc.CurrentSection >= len(doc.Sections) {
		doc.CurrentSection = len(doc.Sections) - 1
	}
	items := doc.Sections[doc.CurrentSection].Items
	if doc.CurrentItem < 0 {
		doc.CurrentItem = 0
	}
	if len(items) == 0 {
		doc.CurrentItem = 0
	} else if doc.CurrentItem >= len(items) {
		doc.CurrentItem = len(items) - 1
	}
	return doc
}

// ValidIndex reports whether (si, ii) addresses an existing item.
func (d Document) ValidIndex(si, ii int) bool {
	if si < 0 || si >= len(d.Sections) {
		return false
	}
	return ii >= 0 && ii < len(d.Sections[si].Items)
}

// Clone returns a deep copy of the document. The dispatcher uses targeted
// copy-on-write instead; Clone is for callers that hand a snapshot across
// an ownership boundary.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, sec := range d.Sections {
		out.Sections[i] = sec.Clone()
	}
	out.Quote = append([]QuoteLine(nil), d.Quote...)
	return out
}

func (s Section) Clone() Section {
	out := s
	out.Items = make([]Item, len(s.Items))
	for i, it := range s.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

func (i Item) Clone() Item {
	out := i
	out.PhotoRefs = append([]string(nil), i.PhotoRefs...)
	out.Recommendations = append([]string(nil), i.Recommendations...)
	return out
}

// Equal compares two documents by value.
func Equal(a, b Document) bool {
	return reflect.DeepEqual(a, b)
}
