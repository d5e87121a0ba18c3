package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"inspectbot/internal/catalog"
	"inspectbot/internal/command"
	"inspectbot/internal/integrations/pricing"
	"inspectbot/internal/model"
	"inspectbot/internal/vocab"
)

func sessionDoc() model.Document {
	return model.New([]model.Section{
		{Title: "Brakes", Items: []model.Item{
			{Label: "Front Brake Pads"},
			{Label: "Rear Brake Pads"},
		}},
		{Title: "HVAC", Items: []model.Item{
			{Label: "Cabin Air Filter"},
		}},
	})
}

func newTestSession(est pricing.Estimator) *Session {
	return New(sessionDoc(), vocab.NewResolver(), Options{
		HistoryDepth: 10,
		LaborRate:    100,
		Estimator:    est,
	})
}

type stubEstimator struct {
	resp pricing.Response
	err  error
	gate chan struct{}
}

func (s *stubEstimator) Estimate(ctx context.Context, req pricing.Request) (pricing.Response, error) {
	if s.gate != nil {
		<-s.gate
	}
	return s.resp, s.err
}

func TestHandleUtteranceMeasurementWithStatus(t *testing.T) {
	sess := newTestSession(nil)

	applied, diags := sess.HandleUtterance("brakes 2mm fail")
	require.Empty(t, diags)
	require.Equal(t, 2, applied)

	doc := sess.Document()
	it := doc.Sections[0].Items[0]
	require.Equal(t, "2", it.Value)
	require.Equal(t, "mm", it.Unit)
	require.Equal(t, model.StatusFail, it.Status)
	require.Equal(t, model.DocInProgress, doc.Status)
}

func TestHandleUtteranceRecommendationBuildsQuote(t *testing.T) {
	sess := newTestSession(nil)

	applied, diags := sess.HandleUtterance("recommend cabin filter")
	require.Empty(t, diags)
	require.Equal(t, 1, applied)

	entries := []catalog.Entry{
		{CanonicalName: "cabin filter", PartCost: 24.99, LaborHours: 0.3},
	}
	lines := sess.BuildQuote(entries)
	require.Len(t, lines, 1)
	require.Equal(t, "Cabin Air Filter", lines[0].SourceItem)
	require.InDelta(t, 24.99+0.3*100, lines[0].TotalCost, 1e-9)

	// BuildQuote appends to the document's quote.
	require.Len(t, sess.QuoteLines(), 1)
}

func TestHandleUtteranceUnresolvedReference(t *testing.T) {
	sess := newTestSession(nil)
	before := sess.Document()

	applied, diags := sess.HandleUtterance("muffler bearing ok")
	require.Equal(t, 0, applied)
	require.NotEmpty(t, diags)
	require.True(t, model.Equal(before, sess.Document()))
}

func TestHandlePayloadMalformed(t *testing.T) {
	sess := newTestSession(nil)
	before := sess.Document()

	applied, diags := sess.HandlePayload([]byte(`{"foo":"bar"}`))
	require.Equal(t, 0, applied)
	require.Len(t, diags, 1)
	require.Equal(t, command.DiagUnrecognizedShape, diags[0].Kind)
	require.True(t, model.Equal(before, sess.Document()))
}

func TestHandlePayloadNested(t *testing.T) {
	sess := newTestSession(nil)

	applied, diags := sess.HandlePayload([]byte(`{"sectionIndex":0,"itemIndex":1,"status":"ok"}`))
	require.Empty(t, diags)
	require.Equal(t, 1, applied)
	require.Equal(t, model.StatusOK, sess.Document().Sections[0].Items[1].Status)
}

func TestDispatchUndo(t *testing.T) {
	sess := newTestSession(nil)
	before := sess.Document()

	require.True(t, sess.Dispatch(command.SetStatus{
		Loc:    command.IndexLocator(0, 0),
		Status: model.StatusFail,
	}))
	require.True(t, sess.Dispatch(command.Undo{}))
	require.True(t, model.Equal(before, sess.Document()))

	// Nothing left to undo.
	require.False(t, sess.Dispatch(command.Undo{}))
}

func TestRequestPricingLifecycle(t *testing.T) {
	est := &stubEstimator{
		resp: pricing.Response{Kind: pricing.KindEstimate, PartCost: 30, LaborHours: 0.5},
		gate: make(chan struct{}),
	}
	sess := newTestSession(est)

	id, err := sess.RequestPricing(context.Background(), 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	lines := sess.QuoteLines()
	require.Len(t, lines, 1)
	require.Equal(t, id, lines[0].ID)
	require.Equal(t, model.PricingPending, lines[0].Pricing)
	require.Equal(t, model.ProvenanceAI, lines[0].Provenance)
	require.True(t, sess.PricingInFlight(0, 0))

	// A second request for the same item is rejected, not queued.
	_, err = sess.RequestPricing(context.Background(), 0, 0)
	require.ErrorIs(t, err, ErrPricingInFlight)

	// Another item is independent.
	_, err = sess.RequestPricing(context.Background(), 0, 1)
	require.NoError(t, err)

	close(est.gate)
	waitForPricing(t, sess, id)

	lines = sess.QuoteLines()
	require.Equal(t, id, lines[0].ID)
	require.Equal(t, model.PricingFinal, lines[0].Pricing)
	require.InDelta(t, 30.0, lines[0].UnitPartCost, 1e-9)
	require.InDelta(t, 0.5, lines[0].LaborHours, 1e-9)
	require.InDelta(t, 30+0.5*100, lines[0].TotalCost, 1e-9)
}

func TestRequestPricingUnknownLeavesPending(t *testing.T) {
	est := &stubEstimator{
		resp: pricing.Response{Kind: pricing.KindUnknown, Raw: "no idea"},
	}
	sess := newTestSession(est)

	id, err := sess.RequestPricing(context.Background(), 0, 0)
	require.NoError(t, err)

	waitForIdle(t, sess, 0, 0)
	lines := sess.QuoteLines()
	require.Equal(t, id, lines[0].ID)
	require.Equal(t, model.PricingPending, lines[0].Pricing)

	// The slot frees up once the flight resolves, even without a patch.
	_, err = sess.RequestPricing(context.Background(), 0, 0)
	require.NoError(t, err)
}

func TestRequestPricingErrors(t *testing.T) {
	sess := newTestSession(nil)
	_, err := sess.RequestPricing(context.Background(), 0, 0)
	require.ErrorIs(t, err, ErrNoEstimator)

	sess = newTestSession(&stubEstimator{err: errors.New("boom")})
	_, err = sess.RequestPricing(context.Background(), 5, 0)
	require.ErrorIs(t, err, ErrNoSuchItem)
}

func TestPatchQuoteLineUnknownID(t *testing.T) {
	sess := newTestSession(nil)
	require.False(t, sess.PatchQuoteLine("nope", 10, 1))
}

func waitForPricing(t *testing.T, sess *Session, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, l := range sess.QuoteLines() {
			if l.ID == id && l.Pricing == model.PricingFinal {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("pricing for line %s never resolved", id)
}

func waitForIdle(t *testing.T, sess *Session, si, ii int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !sess.PricingInFlight(si, ii) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("pricing for (%d, %d) never settled", si, ii)
}
