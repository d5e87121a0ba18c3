// Package dispatch applies commands to inspection documents as pure state
// transitions. The input document is never mutated: exactly one item (or
// one section, for MarkSectionNA) is rebuilt per call and every sibling
// keeps its backing storage.
package dispatch

import (
	"strings"

	"inspectbot/internal/command"
	"inspectbot/internal/model"
	"inspectbot/internal/vocab"
)

type Dispatcher struct {
	res *vocab.Resolver
}

func New(res *vocab.Resolver) *Dispatcher {
	return &Dispatcher{res: res}
}

// Dispatch applies one command and returns the next document value, the
// next history, and whether the command took effect. A locator the
// resolver cannot place, or a mutating command against a completed
// document, is a no-op with applied=false, never a fault.
func (d *Dispatcher) Dispatch(doc model.Document, hist History, cmd command.Command) (model.Document, History, bool) {
	switch c := cmd.(type) {
	case command.Pause:
		return d.setDocStatus(doc, hist, model.DocPaused)
	case command.Resume:
		return d.setDocStatus(doc, hist, model.DocInProgress)
	case command.Complete:
		p := statusPatch(doc)
		doc.Status = model.DocCompleted
		return doc, hist.push(p), true

	case command.Undo:
		return d.undo(doc, hist)

	case command.SetStatus:
		return d.applyItem(doc, hist, c.Loc, func(it *model.Item) {
			it.Status = c.Status
		})
	case command.SetNote:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return doc, hist, false
		}
		return d.applyItem(doc, hist, c.Loc, func(it *model.Item) {
			it.Notes = text
		})
	case command.SetMeasurement:
		if strings.TrimSpace(c.Value) == "" {
			return doc, hist, false
		}
		return d.applyItem(doc, hist, c.Loc, func(it *model.Item) {
			it.Value = strings.TrimSpace(c.Value)
			it.Unit = strings.TrimSpace(c.Unit)
		})
	case command.AddRecommendation:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return doc, hist, false
		}
		return d.applyItem(doc, hist, c.Loc, func(it *model.Item) {
			// A recommended item becomes a quote candidate unless it
			// already carries the stronger fail status.
			if it.Status != model.StatusFail {
				it.Status = model.StatusRecommend
			}
			norm := strings.ToLower(text)
			for _, r := range it.Recommendations {
				if strings.ToLower(strings.TrimSpace(r)) == norm {
					return // duplicate delivery, keep the first
				}
			}
			it.Recommendations = append(append([]string(nil), it.Recommendations...), text)
		})

	case command.MarkSectionNA:
		return d.markSectionNA(doc, hist, c.Loc)
	}
	return doc, hist, false
}

func (d *Dispatcher) setDocStatus(doc model.Document, hist History, target model.DocStatus) (model.Document, History, bool) {
	if doc.Status == model.DocCompleted {
		return doc, hist, false
	}
	p := statusPatch(doc)
	doc.Status = target
	return doc, hist.push(p), true
}

func statusPatch(doc model.Document) patch {
	return patch{
		kind:              patchDocStatus,
		prevDocStatus:     doc.Status,
		prevCursorSection: doc.CurrentSection,
		prevCursorItem:    doc.CurrentItem,
	}
}

// resolveItem turns a locator into bounds-checked indices. Explicit
// indices are validated, names go through the resolver against the
// current document, and an empty locator falls back to the cursor.
func (d *Dispatcher) resolveItem(doc model.Document, loc command.Locator) (int, int, bool) {
	switch {
	case loc.HasIndices():
		if doc.ValidIndex(loc.SectionIndex, loc.ItemIndex) {
			return loc.SectionIndex, loc.ItemIndex, true
		}
		return 0, 0, false
	case loc.HasNames():
		if loc.Section != "" && loc.Item != "" {
			if si, ii, ok := d.res.Locate(vocab.Target{Section: loc.Section, Item: loc.Item}, doc); ok {
				return si, ii, true
			}
		}
		phrase := loc.Item
		if phrase == "" {
			phrase = loc.Section
		}
		return d.res.ResolveIndices(phrase, doc)
	default:
		clamped := model.ClampCursor(doc)
		if clamped.ValidIndex(clamped.CurrentSection, clamped.CurrentItem) {
			return clamped.CurrentSection, clamped.CurrentItem, true
		}
		return 0, 0, false
	}
}

func (d *Dispatcher) applyItem(doc model.Document, hist History, loc command.Locator, mutate func(*model.Item)) (model.Document, History, bool) {
	if doc.Status == model.DocCompleted {
		return doc, hist, false
	}
	si, ii, ok := d.resolveItem(doc, loc)
	if !ok {
		return doc, hist, false
	}

	p := patch{
		kind:              patchItem,
		sectionIndex:      si,
		itemIndex:         ii,
		prevItem:          doc.Sections[si].Items[ii].Clone(),
		prevDocStatus:     doc.Status,
		prevCursorSection: doc.CurrentSection,
		prevCursorItem:    doc.CurrentItem,
	}

	doc = withItem(doc, si, ii, mutate)
	if doc.Status == model.DocNotStarted {
		doc.Status = model.DocInProgress
	}
	doc.CurrentSection, doc.CurrentItem = si, ii
	doc = model.ClampCursor(doc)
	return doc, hist.push(p), true
}

func (d *Dispatcher) markSectionNA(doc model.Document, hist History, loc command.Locator) (model.Document, History, bool) {
	if doc.Status == model.DocCompleted {
		return doc, hist, false
	}
	si, ok := d.resolveSection(doc, loc)
	if !ok {
		return doc, hist, false
	}

	prev := doc.Sections[si]
	p := patch{
		kind:              patchSection,
		sectionIndex:      si,
		prevItems:         cloneItems(prev.Items),
		prevSectionStatus: prev.Status,
		prevDocStatus:     doc.Status,
		prevCursorSection: doc.CurrentSection,
		prevCursorItem:    doc.CurrentItem,
	}

	sections := make([]model.Section, len(doc.Sections))
	copy(sections, doc.Sections)
	items := cloneItems(prev.Items)
	for i := range items {
		items[i].Status = model.StatusNA
	}
	sections[si].Items = items
	sections[si].Status = model.StatusNA
	doc.Sections = sections
	if doc.Status == model.DocNotStarted {
		doc.Status = model.DocInProgress
	}
	doc.CurrentSection, doc.CurrentItem = si, 0
	doc = model.ClampCursor(doc)
	return doc, hist.push(p), true
}

func (d *Dispatcher) resolveSection(doc model.Document, loc command.Locator) (int, bool) {
	switch {
	case loc.SectionIndex >= 0:
		if loc.SectionIndex < len(doc.Sections) {
			return loc.SectionIndex, true
		}
		return 0, false
	case loc.Section != "":
		return d.res.ResolveSection(loc.Section, doc)
	case loc.Item != "":
		return d.res.ResolveSection(loc.Item, doc)
	default:
		clamped := model.ClampCursor(doc)
		if len(clamped.Sections) == 0 {
			return 0, false
		}
		return clamped.CurrentSection, true
	}
}

func (d *Dispatcher) undo(doc model.Document, hist History) (model.Document, History, bool) {
	p, rest, ok := hist.pop()
	if !ok {
		return doc, hist, false
	}

	switch p.kind {
	case patchItem:
		if doc.ValidIndex(p.sectionIndex, p.itemIndex) {
			doc = withItem(doc, p.sectionIndex, p.itemIndex, func(it *model.Item) {
				*it = p.prevItem.Clone()
			})
		}
	case patchSection:
		if p.sectionIndex < len(doc.Sections) {
			sections := make([]model.Section, len(doc.Sections))
			copy(sections, doc.Sections)
			sections[p.sectionIndex].Items = cloneItems(p.prevItems)
			sections[p.sectionIndex].Status = p.prevSectionStatus
			doc.Sections = sections
		}
	}
	doc.Status = p.prevDocStatus
	doc.CurrentSection, doc.CurrentItem = p.prevCursorSection, p.prevCursorItem
	doc = model.ClampCursor(doc)
	return doc, rest, true
}

// withItem rebuilds the path to one item and applies mutate to a copy of
// it. Sibling sections keep their item slices untouched.
func withItem(doc model.Document, si, ii int, mutate func(*model.Item)) model.Document {
	sections := make([]model.Section, len(doc.Sections))
	copy(sections, doc.Sections)
	items := make([]model.Item, len(sections[si].Items))
	copy(items, sections[si].Items)
	it := items[ii]
	mutate(&it)
	items[ii] = it
	sections[si].Items = items
	doc.Sections = sections
	return doc
}

func cloneItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
