package vocab

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"inspectbot/internal/model"
)

// Target is a canonical (section title, item label) pair.
type Target struct {
	Section string
	Item    string
}

// Resolver maps colloquial phrases to canonical targets. Lookup is
// case-insensitive and whitespace-normalized; there is no fuzzy matching,
// and an ambiguous phrase fails closed rather than guessing.
type Resolver struct {
	phrases map[string]Target
}

// NewResolver returns a resolver seeded with the built-in dictionary.
func NewResolver() *Resolver {
	r := &Resolver{phrases: make(map[string]Target, len(builtinTerms))}
	for phrase, target := range builtinTerms {
		r.phrases[normalizePhrase(phrase)] = target
	}
	return r
}

type overlayFile struct {
	Terms []overlayTerm `yaml:"terms"`
}

type overlayTerm struct {
	Phrase  string `yaml:"phrase"`
	Section string `yaml:"section"`
	Item    string `yaml:"item"`
}

// LoadOverlay merges a shop-specific phrase dictionary into the resolver.
// Overlay terms win over built-ins on collision.
func (r *Resolver) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read vocabulary: %w", err)
	}
	var f overlayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse vocabulary yaml: %w", err)
	}
	for _, t := range f.Terms {
		phrase := normalizePhrase(t.Phrase)
		if phrase == "" || strings.TrimSpace(t.Section) == "" || strings.TrimSpace(t.Item) == "" {
			continue
		}
		r.phrases[phrase] = Target{
			Section: strings.TrimSpace(t.Section),
			Item:    strings.TrimSpace(t.Item),
		}
	}
	return nil
}

// Resolve looks a phrase up in the static dictionary only.
func (r *Resolver) Resolve(freeText string) (Target, bool) {
	target, ok := r.phrases[normalizePhrase(freeText)]
	return target, ok
}

// ResolveWithin resolves a phrase to canonical names: first the static
// dictionary, then a fallback scan of the live document for an exact
// case-insensitive item label match, so documents built with ad-hoc
// section names still resolve. A label appearing in more than one section
// is ambiguous and fails closed.
func (r *Resolver) ResolveWithin(freeText string, doc model.Document) (Target, bool) {
	if target, ok := r.Resolve(freeText); ok {
		// Dictionary hits only count when the document actually carries
		// the canonical target.
		if _, _, found := r.Locate(target, doc); found {
			return target, true
		}
	}

	phrase := normalizePhrase(freeText)
	if phrase == "" {
		return Target{}, false
	}
	var match Target
	matches := 0
	for _, sec := range doc.Sections {
		for _, it := range sec.Items {
			if normalizePhrase(it.Label) == phrase {
				match = Target{Section: sec.Title, Item: it.Label}
				matches++
			}
		}
	}
	if matches == 1 {
		return match, true
	}
	return Target{}, false
}

// ResolveIndices is ResolveWithin followed by Locate.
func (r *Resolver) ResolveIndices(freeText string, doc model.Document) (int, int, bool) {
	target, ok := r.ResolveWithin(freeText, doc)
	if !ok {
		return 0, 0, false
	}
	return r.Locate(target, doc)
}

// Locate maps canonical names to indices in the given document.
func (r *Resolver) Locate(target Target, doc model.Document) (int, int, bool) {
	for si, sec := range doc.Sections {
		if !equalFold(sec.Title, target.Section) {
			continue
		}
		for ii, it := range sec.Items {
			if equalFold(it.Label, target.Item) {
				return si, ii, true
			}
		}
	}
	return 0, 0, false
}

// ResolveSection resolves a phrase to a section index: dictionary section
// first, then an exact case-insensitive title match.
func (r *Resolver) ResolveSection(freeText string, doc model.Document) (int, bool) {
	title := strings.TrimSpace(freeText)
	if target, ok := r.Resolve(freeText); ok {
		title = target.Section
	}
	for si, sec := range doc.Sections {
		if equalFold(sec.Title, title) {
			return si, true
		}
	}
	return 0, false
}

// KnownPhrase reports whether the normalized phrase exists in the static
// dictionary. The utterance parser uses this to detect item references.
func (r *Resolver) KnownPhrase(freeText string) bool {
	_, ok := r.phrases[normalizePhrase(freeText)]
	return ok
}

func normalizePhrase(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func equalFold(a, b string) bool {
	return normalizePhrase(a) == normalizePhrase(b)
}
