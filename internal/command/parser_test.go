package command

import (
	"testing"

	"inspectbot/internal/model"
	"inspectbot/internal/vocab"
)

func parserDoc() model.Document {
	return model.New([]model.Section{
		{Title: "Brakes", Items: []model.Item{
			{Label: "Front Brake Pads"},
			{Label: "Rear Brake Pads"},
		}},
		{Title: "Tires", Items: []model.Item{
			{Label: "Front Tires"},
			{Label: "Front Tire Pressure"},
			{Label: "Rear Tire Pressure"},
			{Label: "Spare Tire"},
		}},
		{Title: "HVAC", Items: []model.Item{
			{Label: "Cabin Air Filter"},
		}},
	})
}

func TestParseControlWords(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cases := []struct {
		text string
		want Command
	}{
		{"pause inspection", Pause{}},
		{"hold on", Pause{}},
		{"ok stop listening", Pause{}},
		{"resume", Resume{}},
		{"continue the inspection", Resume{}},
		{"all done", Complete{}},
		{"inspection complete", Complete{}},
		{"undo", Undo{}},
	}
	for _, tc := range cases {
		cmds, diags := ParseUtterance(tc.text, res, doc)
		if len(diags) != 0 {
			t.Fatalf("%q: unexpected diagnostics %+v", tc.text, diags)
		}
		if len(cmds) != 1 || cmds[0] != tc.want {
			t.Fatalf("%q: got %+v, want %+v", tc.text, cmds, tc.want)
		}
	}
}

func TestParseMeasurementWithTrailingStatus(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("brakes 2mm fail", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2", len(cmds))
	}

	wantLoc := NamedLocator("Brakes", "Front Brake Pads")
	meas, ok := cmds[0].(SetMeasurement)
	if !ok {
		t.Fatalf("first command is %T, want SetMeasurement", cmds[0])
	}
	if meas.Loc != wantLoc || meas.Value != "2" || meas.Unit != "mm" {
		t.Fatalf("unexpected measurement: %+v", meas)
	}
	status, ok := cmds[1].(SetStatus)
	if !ok {
		t.Fatalf("second command is %T, want SetStatus", cmds[1])
	}
	if status.Loc != wantLoc || status.Status != model.StatusFail {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestParseMeasurementSeparateUnitToken(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("front tire pressure reads 32 psi", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	meas := cmds[0].(SetMeasurement)
	if meas.Loc != NamedLocator("Tires", "Front Tire Pressure") {
		t.Fatalf("unexpected locator: %+v", meas.Loc)
	}
	if meas.Value != "32" || meas.Unit != "psi" {
		t.Fatalf("got value=%q unit=%q", meas.Value, meas.Unit)
	}
}

func TestParseMeasurementUnresolvedReference(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("flux capacitor 3mm", res, doc)
	if len(cmds) != 0 {
		t.Fatalf("unresolved measurement must emit no commands, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnresolvedReference {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParseMeasureCueWithoutValue(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("measure the tread", res, doc)
	if len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnparsableInput {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParseRecommendation(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("recommend cabin filter", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	rec := cmds[0].(AddRecommendation)
	if rec.Loc != NamedLocator("HVAC", "Cabin Air Filter") {
		t.Fatalf("unexpected locator: %+v", rec.Loc)
	}
	if rec.Text != "cabin filter" {
		t.Fatalf("got text %q", rec.Text)
	}
}

func TestParseRecommendationFallsBackToCursor(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, _ := ParseUtterance("monitor slight seepage", res, doc)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	rec := cmds[0].(AddRecommendation)
	if !rec.Loc.IsCursor() {
		t.Fatalf("expected cursor locator, got %+v", rec.Loc)
	}
	if rec.Text != "slight seepage" {
		t.Fatalf("got text %q", rec.Text)
	}
}

func TestParseStatusWithReference(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("front tires ok", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	status := cmds[0].(SetStatus)
	if status.Loc != NamedLocator("Tires", "Front Tires") || status.Status != model.StatusOK {
		t.Fatalf("unexpected command: %+v", status)
	}
}

func TestParseStatusNotApplicable(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("spare tire not applicable", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	status := cmds[0].(SetStatus)
	if status.Loc != NamedLocator("Tires", "Spare Tire") || status.Status != model.StatusNA {
		t.Fatalf("unexpected command: %+v", status)
	}
}

func TestParseStatusOnCursor(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("fail", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	status := cmds[0].(SetStatus)
	if !status.Loc.IsCursor() || status.Status != model.StatusFail {
		t.Fatalf("unexpected command: %+v", status)
	}
}

func TestParseStatusUnresolvedEmitsDiagnostic(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("muffler bearing ok", res, doc)
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	status := cmds[0].(SetStatus)
	if status.Loc.Item != "muffler bearing" || status.Loc.HasIndices() {
		t.Fatalf("unexpected locator: %+v", status.Loc)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnresolvedReference {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestParseDefaultNote(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("customer reports squeak when braking", res, doc)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	note := cmds[0].(SetNote)
	if !note.Loc.IsCursor() {
		t.Fatalf("expected cursor locator, got %+v", note.Loc)
	}
	if note.Text != "customer reports squeak when braking" {
		t.Fatalf("got text %q", note.Text)
	}
}

func TestParseEmptyUtterance(t *testing.T) {
	res := vocab.NewResolver()
	doc := parserDoc()

	cmds, diags := ParseUtterance("   ", res, doc)
	if len(cmds) != 0 {
		t.Fatalf("expected no commands, got %+v", cmds)
	}
	if len(diags) != 1 || diags[0].Kind != DiagUnparsableInput {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}
