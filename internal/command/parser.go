package command

import (
	"regexp"
	"strings"

	"inspectbot/internal/model"
	"inspectbot/internal/vocab"
)

// Keyword families, checked in fixed priority order. Control words come
// before content words so "pause inspection" is never misread as a note
// containing the word "inspection".
var (
	pauseWords    = wordSet("pause", "hold")
	resumeWords   = wordSet("resume", "continue")
	completeWords = wordSet("complete", "done", "finish", "finished")
	measureCues   = wordSet("measure", "measures", "measurement", "reading", "reads")
	recommendCues = wordSet("recommend", "recommends", "monitor", "watch")
	fillerWords   = wordSet("the", "a", "an", "is", "are", "at", "to", "on", "for", "set", "check", "item", "and", "it", "its")

	statusWords = map[string]model.ItemStatus{
		"ok":     model.StatusOK,
		"okay":   model.StatusOK,
		"good":   model.StatusOK,
		"pass":   model.StatusOK,
		"passes": model.StatusOK,
		"fail":   model.StatusFail,
		"fails":  model.StatusFail,
		"failed": model.StatusFail,
		"bad":    model.StatusFail,
		"na":     model.StatusNA,
	}

	knownUnits = wordSet("mm", "cm", "in", "inches", "psi", "kpa", "v", "volts", "amps", "mils", "32nds", "percent", "%", "degrees", "qt", "quarts")

	numericToken = regexp.MustCompile(`^(\d+(?:\.\d+)?)([a-z%/]+)?$`)
)

func wordSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// ParseUtterance converts one transcribed utterance into zero or more
// commands. It never mutates state and never guesses: input that matches
// no family, or a measurement whose value cannot be isolated, yields no
// commands plus a diagnostic.
func ParseUtterance(text string, res *vocab.Resolver, doc model.Document) ([]Command, []Diagnostic) {
	joined := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if joined == "" {
		return nil, []Diagnostic{{Kind: DiagUnparsableInput, Raw: text}}
	}
	tokens := strings.Fields(joined)

	// Control words first.
	if cmd, ok := parseControl(joined, tokens); ok {
		return []Command{cmd}, nil
	}

	// Measurement: a cue word or a numeric token selects the family.
	value, unit, valueIdx := isolateValue(tokens)
	if valueIdx >= 0 || containsAny(tokens, measureCues) {
		return parseMeasurement(text, tokens, value, unit, valueIdx, res, doc)
	}

	// Recommendation.
	if containsAny(tokens, recommendCues) {
		return parseRecommendation(tokens, res, doc), nil
	}

	// Status.
	if cmds, diags, ok := parseStatus(text, tokens, res, doc); ok {
		return cmds, diags
	}

	// Default: free-form note against the cursor item.
	return []Command{SetNote{Loc: CursorLocator(), Text: strings.TrimSpace(text)}}, nil
}

func parseControl(joined string, tokens []string) (Command, bool) {
	if strings.Contains(joined, "stop listening") {
		return Pause{}, true
	}
	for _, tok := range tokens {
		switch {
		case tok == "undo":
			return Undo{}, true
		case pauseWords[tok]:
			return Pause{}, true
		case resumeWords[tok]:
			return Resume{}, true
		case completeWords[tok]:
			return Complete{}, true
		}
	}
	return nil, false
}

// isolateValue finds the last numeric token and its unit. "2mm" carries
// the unit as a suffix; "2 mm" carries it as the following token.
func isolateValue(tokens []string) (value, unit string, idx int) {
	idx = -1
	for i, tok := range tokens {
		m := numericToken.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		value, unit, idx = m[1], m[2], i
		if unit == "" && i+1 < len(tokens) && knownUnits[tokens[i+1]] {
			unit = tokens[i+1]
		}
	}
	return value, unit, idx
}

func parseMeasurement(raw string, tokens []string, value, unit string, valueIdx int, res *vocab.Resolver, doc model.Document) ([]Command, []Diagnostic) {
	if valueIdx < 0 {
		// Cue word present but no isolatable value: fail closed.
		return nil, []Diagnostic{{Kind: DiagUnparsableInput, Raw: raw}}
	}

	// The item reference is whatever precedes the value, minus cue and
	// filler words.
	var refWords []string
	for i, tok := range tokens {
		if i >= valueIdx {
			break
		}
		if measureCues[tok] || fillerWords[tok] {
			continue
		}
		if _, isStatus := statusWords[tok]; isStatus {
			continue
		}
		refWords = append(refWords, tok)
	}
	phrase := strings.Join(refWords, " ")
	target, ok := res.ResolveWithin(phrase, doc)
	if !ok {
		return nil, []Diagnostic{{Kind: DiagUnresolvedReference, Raw: raw}}
	}

	loc := NamedLocator(target.Section, target.Item)
	cmds := []Command{SetMeasurement{Loc: loc, Value: value, Unit: unit}}

	// A trailing status word rides along: "brakes 2mm fail".
	for i := valueIdx + 1; i < len(tokens); i++ {
		if status, isStatus := statusWords[tokens[i]]; isStatus {
			cmds = append(cmds, SetStatus{Loc: loc, Status: status})
			break
		}
	}
	return cmds, nil
}

func parseRecommendation(tokens []string, res *vocab.Resolver, doc model.Document) []Command {
	var rest []string
	for _, tok := range tokens {
		if recommendCues[tok] {
			continue
		}
		rest = append(rest, tok)
	}
	text := strings.Join(rest, " ")

	loc := CursorLocator()
	if target, ok := res.ResolveWithin(text, doc); ok {
		loc = NamedLocator(target.Section, target.Item)
	}
	return []Command{AddRecommendation{Loc: loc, Text: text}}
}

func parseStatus(raw string, tokens []string, res *vocab.Resolver, doc model.Document) ([]Command, []Diagnostic, bool) {
	joined := strings.Join(tokens, " ")
	status := model.StatusUnset
	var rest []string

	if idx := strings.Index(joined, "not applicable"); idx >= 0 {
		status = model.StatusNA
		rest = strings.Fields(strings.Replace(joined, "not applicable", "", 1))
	} else {
		for _, tok := range tokens {
			if s, ok := statusWords[tok]; ok && status == model.StatusUnset {
				status = s
				continue
			}
			rest = append(rest, tok)
		}
	}
	if status == model.StatusUnset {
		return nil, nil, false
	}

	var kept []string
	for _, tok := range rest {
		if !fillerWords[tok] {
			kept = append(kept, tok)
		}
	}
	phrase := strings.Join(kept, " ")

	switch {
	case phrase == "":
		return []Command{SetStatus{Loc: CursorLocator(), Status: status}}, nil, true
	default:
		if target, ok := res.ResolveWithin(phrase, doc); ok {
			return []Command{SetStatus{Loc: NamedLocator(target.Section, target.Item), Status: status}}, nil, true
		}
		// Emit with the raw reference; the dispatcher no-ops when the
		// resolver cannot locate it either.
		return []Command{SetStatus{Loc: Locator{Item: phrase, SectionIndex: -1, ItemIndex: -1}, Status: status}},
			[]Diagnostic{{Kind: DiagUnresolvedReference, Raw: raw}}, true
	}
}

func containsAny(tokens []string, set map[string]bool) bool {
	for _, tok := range tokens {
		if set[tok] {
			return true
		}
	}
	return false
}
