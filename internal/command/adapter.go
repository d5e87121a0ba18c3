package command

import (
	"strings"

	"github.com/tidwall/gjson"

	"inspectbot/internal/model"
)

// ParsePayload adapts an externally-produced structured payload (legacy
// call sites, AI responses) onto the command set. Supported shapes are a
// closed list: a flat {type, section, item, ...} object, a nested
// {sectionIndex, itemIndex, ...} object, or a top-level array of either.
// Anything else yields no command and an UnrecognizedShape diagnostic;
// malformed input never panics and never throws.
func ParsePayload(raw []byte) ([]Command, []Diagnostic) {
	root := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) {
		return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: string(raw)}}
	}

	if root.IsArray() {
		var cmds []Command
		var diags []Diagnostic
		root.ForEach(func(_, el gjson.Result) bool {
			c, d := adaptObject(el)
			cmds = append(cmds, c...)
			diags = append(diags, d...)
			return true
		})
		return cmds, diags
	}
	return adaptObject(root)
}

func adaptObject(obj gjson.Result) ([]Command, []Diagnostic) {
	if !obj.IsObject() {
		return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
	}
	if t := obj.Get("type"); t.Exists() {
		return adaptFlat(obj, strings.ToLower(strings.TrimSpace(t.String())))
	}
	if firstOf(obj, "sectionIndex", "section_index").Exists() {
		return adaptNested(obj)
	}
	return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
}

// adaptFlat maps the flat legacy shape via an explicit type table.
func adaptFlat(obj gjson.Result, typ string) ([]Command, []Diagnostic) {
	loc := NamedLocator(
		strings.TrimSpace(obj.Get("section").String()),
		strings.TrimSpace(firstOf(obj, "item", "label").String()),
	)

	switch typ {
	case "set_status", "status":
		status := strings.ToLower(strings.TrimSpace(obj.Get("status").String()))
		if !model.ValidItemStatus(status) {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{SetStatus{Loc: loc, Status: model.ItemStatus(status)}}, nil
	case "set_note", "note", "add_note":
		text := strings.TrimSpace(firstOf(obj, "note", "notes", "text").String())
		if text == "" {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{SetNote{Loc: loc, Text: text}}, nil
	case "set_measurement", "measurement", "measure":
		value := firstOf(obj, "value", "measurement")
		if !value.Exists() {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{SetMeasurement{
			Loc:   loc,
			Value: strings.TrimSpace(value.String()),
			Unit:  strings.TrimSpace(obj.Get("unit").String()),
		}}, nil
	case "add_recommendation", "recommendation", "recommend":
		text := strings.TrimSpace(firstOf(obj, "text", "recommendation", "note").String())
		if text == "" {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{AddRecommendation{Loc: loc, Text: text}}, nil
	case "mark_section_na", "section_na":
		if loc.Section == "" {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{MarkSectionNA{Loc: loc}}, nil
	case "pause":
		return []Command{Pause{}}, nil
	case "resume":
		return []Command{Resume{}}, nil
	case "complete":
		return []Command{Complete{}}, nil
	case "undo":
		return []Command{Undo{}}, nil
	}
	return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
}

// adaptNested maps the index-addressed legacy shape. The command variant
// is discriminated by which content field is present, checked in a fixed
// order so overlapping payloads stay deterministic.
func adaptNested(obj gjson.Result) ([]Command, []Diagnostic) {
	si := int(firstOf(obj, "sectionIndex", "section_index").Int())
	ii := int(firstOf(obj, "itemIndex", "item_index").Int())
	loc := IndexLocator(si, ii)

	if status := obj.Get("status"); status.Exists() {
		s := strings.ToLower(strings.TrimSpace(status.String()))
		if !model.ValidItemStatus(s) {
			return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
		}
		return []Command{SetStatus{Loc: loc, Status: model.ItemStatus(s)}}, nil
	}
	if value := firstOf(obj, "value", "measurement"); value.Exists() {
		return []Command{SetMeasurement{
			Loc:   loc,
			Value: strings.TrimSpace(value.String()),
			Unit:  strings.TrimSpace(obj.Get("unit").String()),
		}}, nil
	}
	if note := firstOf(obj, "note", "notes"); note.Exists() {
		return []Command{SetNote{Loc: loc, Text: strings.TrimSpace(note.String())}}, nil
	}
	if rec := firstOf(obj, "recommendation", "recommend"); rec.Exists() {
		return []Command{AddRecommendation{Loc: loc, Text: strings.TrimSpace(rec.String())}}, nil
	}
	return nil, []Diagnostic{{Kind: DiagUnrecognizedShape, Raw: obj.Raw}}
}

func firstOf(obj gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if r := obj.Get(k); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
