package command

import (
	"testing"

	"inspectbot/internal/model"
)

func TestParsePayloadFlatSetStatus(t *testing.T) {
	raw := []byte(`{"type":"set_status","section":"Brakes","item":"Front Brake Pads","status":"fail"}`)
	cmds, diags := ParsePayload(raw)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	status := cmds[0].(SetStatus)
	if status.Loc != NamedLocator("Brakes", "Front Brake Pads") || status.Status != model.StatusFail {
		t.Fatalf("unexpected command: %+v", status)
	}
}

func TestParsePayloadFlatAliases(t *testing.T) {
	raw := []byte(`{"type":"recommend","section":"HVAC","label":"Cabin Air Filter","note":"replace at next service"}`)
	cmds, diags := ParsePayload(raw)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	rec := cmds[0].(AddRecommendation)
	if rec.Loc != NamedLocator("HVAC", "Cabin Air Filter") || rec.Text != "replace at next service" {
		t.Fatalf("unexpected command: %+v", rec)
	}
}

func TestParsePayloadFlatInvalidStatus(t *testing.T) {
	raw := []byte(`{"type":"set_status","section":"Brakes","item":"Front Brake Pads","status":"meh"}`)
	cmds, diags := ParsePayload(raw)
	if len(cmds) != 0 {
		t.Fatalf("invalid status must emit no command, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnrecognizedShape {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParsePayloadNestedMeasurement(t *testing.T) {
	raw := []byte(`{"sectionIndex":1,"itemIndex":0,"value":32,"unit":"psi"}`)
	cmds, diags := ParsePayload(raw)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	meas := cmds[0].(SetMeasurement)
	if meas.Loc != IndexLocator(1, 0) || meas.Value != "32" || meas.Unit != "psi" {
		t.Fatalf("unexpected command: %+v", meas)
	}
}

func TestParsePayloadNestedDiscriminationOrder(t *testing.T) {
	// status outranks note when both are present.
	raw := []byte(`{"section_index":0,"item_index":2,"status":"ok","note":"looks fine"}`)
	cmds, diags := ParsePayload(raw)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	status, ok := cmds[0].(SetStatus)
	if !ok {
		t.Fatalf("got %T, want SetStatus", cmds[0])
	}
	if status.Loc != IndexLocator(0, 2) || status.Status != model.StatusOK {
		t.Fatalf("unexpected command: %+v", status)
	}
}

func TestParsePayloadNestedNote(t *testing.T) {
	raw := []byte(`{"sectionIndex":0,"itemIndex":1,"note":"slight glazing"}`)
	cmds, _ := ParsePayload(raw)
	note := cmds[0].(SetNote)
	if note.Loc != IndexLocator(0, 1) || note.Text != "slight glazing" {
		t.Fatalf("unexpected command: %+v", note)
	}
}

func TestParsePayloadArrayMixed(t *testing.T) {
	raw := []byte(`[
		{"type":"set_status","section":"Brakes","item":"Front Brake Pads","status":"fail"},
		{"foo":"bar"},
		{"type":"pause"}
	]`)
	cmds, diags := ParsePayload(raw)
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}
	if _, ok := cmds[0].(SetStatus); !ok {
		t.Fatalf("first command is %T, want SetStatus", cmds[0])
	}
	if _, ok := cmds[1].(Pause); !ok {
		t.Fatalf("second command is %T, want Pause", cmds[1])
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnrecognizedShape {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParsePayloadUnknownShape(t *testing.T) {
	cmds, diags := ParsePayload([]byte(`{"foo":"bar"}`))
	if len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnrecognizedShape {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParsePayloadMalformedJSON(t *testing.T) {
	cmds, diags := ParsePayload([]byte(`{nope`))
	if len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnrecognizedShape {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParsePayloadControlTypes(t *testing.T) {
	cases := []struct {
		raw  string
		want Command
	}{
		{`{"type":"pause"}`, Pause{}},
		{`{"type":"resume"}`, Resume{}},
		{`{"type":"complete"}`, Complete{}},
		{`{"type":"undo"}`, Undo{}},
	}
	for _, tc := range cases {
		cmds, diags := ParsePayload([]byte(tc.raw))
		if len(diags) != 0 {
			t.Fatalf("%s: unexpected diagnostics %+v", tc.raw, diags)
		}
		if len(cmds) != 1 || cmds[0] != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.raw, cmds, tc.want)
		}
	}
}
