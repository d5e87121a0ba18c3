// Package normalize coerces the heterogeneous section/item payloads that
// accumulated across legacy call sites into the one canonical document
// shape. It is the single boundary where shape discrimination happens;
// downstream code only ever sees model.Section values.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"inspectbot/internal/model"
)

// Normalize accepts three envelope shapes: a bare array of sections, an
// object holding that array under "sections" or "categories", or a single
// section object. Sections that normalize to zero items are dropped: a
// header with no content is not useful downstream. This is deliberately
// lossy; callers that need empty sections must special-case them first.
func Normalize(raw []byte) []model.Section {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	root := gjson.ParseBytes(raw)

	var rawSections []gjson.Result
	switch {
	case root.IsArray():
		rawSections = root.Array()
	case root.Get("sections").IsArray():
		rawSections = root.Get("sections").Array()
	case root.Get("categories").IsArray():
		rawSections = root.Get("categories").Array()
	case looksLikeSection(root):
		rawSections = []gjson.Result{root}
	default:
		return nil
	}

	var out []model.Section
	for i, rs := range rawSections {
		sec := normalizeSection(rs, i)
		if len(sec.Items) == 0 {
			continue
		}
		out = append(out, sec)
	}
	return out
}

// NormalizeValue marshals an in-memory untyped tree and normalizes it.
func NormalizeValue(v any) []model.Section {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return Normalize(data)
}

func looksLikeSection(obj gjson.Result) bool {
	if !obj.IsObject() {
		return false
	}
	return obj.Get("items").Exists() || obj.Get("title").Exists() || obj.Get("name").Exists()
}

func normalizeSection(rs gjson.Result, index int) model.Section {
	sec := model.Section{Title: sectionTitle(rs, index)}

	if status := strings.ToLower(strings.TrimSpace(rs.Get("status").String())); model.ValidItemStatus(status) {
		sec.Status = model.ItemStatus(status)
	}
	sec.Notes = strings.TrimSpace(firstString(rs, "notes", "note"))

	rs.Get("items").ForEach(func(_, ri gjson.Result) bool {
		if item, ok := normalizeItem(ri); ok {
			sec.Items = append(sec.Items, item)
		}
		return true
	})
	return sec
}

func sectionTitle(rs gjson.Result, index int) string {
	if t := strings.TrimSpace(rs.Get("title").String()); t != "" {
		return t
	}
	if n := strings.TrimSpace(rs.Get("name").String()); n != "" {
		return n
	}
	return fmt.Sprintf("Section %d", index+1)
}

// normalizeItem accepts bare strings (a label and nothing else) and
// objects with inconsistent field names. Status is taken only if it is a
// valid enum token; nothing is ever inferred, the default stays unset.
func normalizeItem(ri gjson.Result) (model.Item, bool) {
	if ri.Type == gjson.String {
		label := strings.TrimSpace(ri.String())
		return model.Item{Label: label}, label != ""
	}
	if !ri.IsObject() {
		return model.Item{}, false
	}

	item := model.Item{
		Label: strings.TrimSpace(firstString(ri, "label", "item", "name", "title")),
		Notes: strings.TrimSpace(firstString(ri, "notes", "note")),
		Unit:  strings.TrimSpace(ri.Get("unit").String()),
	}
	if item.Label == "" {
		return model.Item{}, false
	}

	if status := strings.ToLower(strings.TrimSpace(ri.Get("status").String())); model.ValidItemStatus(status) {
		item.Status = model.ItemStatus(status)
	}
	if v := firstResult(ri, "value", "measurement"); v.Exists() {
		item.Value = strings.TrimSpace(v.String())
	}
	for _, key := range []string{"photoRefs", "photos"} {
		if refs := ri.Get(key); refs.IsArray() {
			refs.ForEach(func(_, r gjson.Result) bool {
				if s := strings.TrimSpace(r.String()); s != "" {
					item.PhotoRefs = append(item.PhotoRefs, s)
				}
				return true
			})
			break
		}
	}
	ri.Get("recommendations").ForEach(func(_, r gjson.Result) bool {
		if s := strings.TrimSpace(r.String()); s != "" {
			item.Recommendations = append(item.Recommendations, s)
		}
		return true
	})
	return item, true
}

func firstString(obj gjson.Result, keys ...string) string {
	return firstResult(obj, keys...).String()
}

func firstResult(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := obj.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// Serialize emits sections in the object-envelope shape Normalize
// accepts, so documents round-trip through the storage collaborator.
func Serialize(sections []model.Section) []byte {
	data, err := json.Marshal(map[string][]model.Section{"sections": sections})
	if err != nil {
		return []byte(`{"sections":[]}`)
	}
	return data
}

// SerializeDocument marshals a full document. The result is itself a
// valid Normalize input because the section array sits under "sections".
func SerializeDocument(doc model.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return data, nil
}
