package dispatch

import "inspectbot/internal/model"

type patchKind int

const (
	patchItem patchKind = iota
	patchSection
	patchDocStatus
)

// patch is the inverse record for one dispatched command: enough state to
// restore the touched item or section, the cursor, and the document
// status exactly as they were.
type patch struct {
	kind         patchKind
	sectionIndex int
	itemIndex    int

	prevItem          model.Item
	prevItems         []model.Item
	prevSectionStatus model.ItemStatus

	prevDocStatus     model.DocStatus
	prevCursorSection int
	prevCursorItem    int
}

// History is a bounded, value-semantics log of inverse patches. Undo is a
// pure function of (document, history); pushing never mutates the
// receiver's backing array.
type History struct {
	depth   int
	patches []patch
}

// NewHistory returns an empty history keeping at most depth patches.
// Depth is clamped to a minimum of 1.
func NewHistory(depth int) History {
	if depth < 1 {
		depth = 1
	}
	return History{depth: depth}
}

func (h History) Len() int { return len(h.patches) }

func (h History) push(p patch) History {
	patches := append(append([]patch(nil), h.patches...), p)
	if len(patches) > h.depth {
		patches = patches[len(patches)-h.depth:]
	}
	return History{depth: h.depth, patches: patches}
}

func (h History) pop() (patch, History, bool) {
	if len(h.patches) == 0 {
		return patch{}, h, false
	}
	last := h.patches[len(h.patches)-1]
	rest := append([]patch(nil), h.patches[:len(h.patches)-1]...)
	return last, History{depth: h.depth, patches: rest}, true
}
