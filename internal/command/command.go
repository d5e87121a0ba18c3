// Package command defines the closed set of structured intents the
// dispatcher consumes, and the two parsers that produce them: one for raw
// technician utterances and one for loosely-typed legacy/AI payloads.
package command

import "inspectbot/internal/model"

// Locator addresses one item either by canonical names or by explicit
// indices. An empty locator (no names, negative indices) means "the
// document cursor". Index fields use -1 for unset.
type Locator struct {
	Section      string
	Item         string
	SectionIndex int
	ItemIndex    int
}

// CursorLocator addresses whatever item the document cursor points at.
func CursorLocator() Locator {
	return Locator{SectionIndex: -1, ItemIndex: -1}
}

// NamedLocator addresses an item by canonical section/item names.
func NamedLocator(section, item string) Locator {
	return Locator{Section: section, Item: item, SectionIndex: -1, ItemIndex: -1}
}

// IndexLocator addresses an item by explicit indices.
func IndexLocator(si, ii int) Locator {
	return Locator{SectionIndex: si, ItemIndex: ii}
}

// HasIndices reports whether the locator carries explicit indices.
func (l Locator) HasIndices() bool {
	return l.SectionIndex >= 0 && l.ItemIndex >= 0
}

// HasNames reports whether the locator carries a name pair.
func (l Locator) HasNames() bool {
	return l.Section != "" || l.Item != ""
}

// IsCursor reports whether the locator falls through to the cursor.
func (l Locator) IsCursor() bool {
	return !l.HasIndices() && !l.HasNames()
}

// Command is the closed variant set produced by parsing. New variants are
// added deliberately here, never inferred from payload shape downstream.
type Command interface {
	command()
}

type SetStatus struct {
	Loc    Locator
	Status model.ItemStatus
}

type SetNote struct {
	Loc  Locator
	Text string
}

type SetMeasurement struct {
	Loc   Locator
	Value string
	Unit  string
}

type AddRecommendation struct {
	Loc  Locator
	Text string
}

type MarkSectionNA struct {
	Loc Locator // only the section part is used
}

type Pause struct{}
type Resume struct{}
type Complete struct{}
type Undo struct{}

func (SetStatus) command()         {}
func (SetNote) command()           {}
func (SetMeasurement) command()    {}
func (AddRecommendation) command() {}
func (MarkSectionNA) command()     {}
func (Pause) command()             {}
func (Resume) command()            {}
func (Complete) command()          {}
func (Undo) command()              {}

// DiagKind classifies why an input produced no command. Diagnostics are
// plain values surfaced to the caller, never faults thrown through the
// pipeline.
type DiagKind string

const (
	DiagUnparsableInput     DiagKind = "unparsable_input"
	DiagUnrecognizedShape   DiagKind = "unrecognized_shape"
	DiagUnresolvedReference DiagKind = "unresolved_reference"
)

type Diagnostic struct {
	Kind DiagKind
	// Raw is the offending input, kept verbatim so schema drift shows up
	// in logs instead of as silent data loss.
	Raw string
}
