// Package session hosts one inspection document for the lifetime of a
// visit. It owns the document value, serializes dispatch so each delivered
// utterance is applied to completion before the next is accepted, and runs
// the asynchronous pricing flow without ever blocking the reducer.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"inspectbot/internal/catalog"
	"inspectbot/internal/command"
	"inspectbot/internal/dispatch"
	"inspectbot/internal/integrations/pricing"
	"inspectbot/internal/model"
	"inspectbot/internal/quote"
	"inspectbot/internal/vocab"
)

var (
	ErrPricingInFlight = errors.New("pricing request already in flight for item")
	ErrNoSuchItem      = errors.New("no item at the given indices")
	ErrNoEstimator     = errors.New("no pricing estimator configured")
)

type Options struct {
	HistoryDepth int
	LaborRate    float64
	Estimator    pricing.Estimator
}

type pricingKey struct {
	Section int
	Item    int
}

type Session struct {
	mu   sync.Mutex
	doc  model.Document
	hist dispatch.History
	disp *dispatch.Dispatcher
	res  *vocab.Resolver

	laborRate float64
	estimator pricing.Estimator
	inflight  map[pricingKey]struct{}
}

func New(doc model.Document, res *vocab.Resolver, opts Options) *Session {
	return &Session{
		doc:       model.ClampCursor(doc),
		hist:      dispatch.NewHistory(opts.HistoryDepth),
		disp:      dispatch.New(res),
		res:       res,
		laborRate: opts.LaborRate,
		estimator: opts.Estimator,
		inflight:  make(map[pricingKey]struct{}),
	}
}

// Document returns a snapshot the caller may keep across the ownership
// boundary.
func (s *Session) Document() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Dispatch applies one command. False means the command was a no-op
// (unresolved locator, empty history on undo, completed document).
func (s *Session) Dispatch(cmd command.Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(cmd)
}

func (s *Session) dispatchLocked(cmd command.Command) bool {
	doc, hist, applied := s.disp.Dispatch(s.doc, s.hist, cmd)
	s.doc, s.hist = doc, hist
	return applied
}

// HandleUtterance parses one transcribed utterance and dispatches every
// resulting command before returning. It reports how many commands took
// effect plus any diagnostics.
func (s *Session) HandleUtterance(text string) (int, []command.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmds, diags := command.ParseUtterance(text, s.res, s.doc)
	applied := 0
	for _, cmd := range cmds {
		if s.dispatchLocked(cmd) {
			applied++
		} else {
			diags = append(diags, command.Diagnostic{Kind: command.DiagUnresolvedReference, Raw: text})
		}
	}
	return applied, diags
}

// HandlePayload adapts a structured external payload and dispatches the
// resulting commands.
func (s *Session) HandlePayload(raw []byte) (int, []command.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmds, diags := command.ParsePayload(raw)
	for _, d := range diags {
		log.Printf("session unrecognized payload shape raw=%s", d.Raw)
	}
	applied := 0
	for _, cmd := range cmds {
		if s.dispatchLocked(cmd) {
			applied++
		}
	}
	return applied, diags
}

// BuildQuote matches the current fail/recommend items against the catalog
// and appends the resulting lines to the document's quote. The quote is
// append-only; existing lines are never reordered or replaced.
func (s *Session) BuildQuote(entries []catalog.Entry) []model.QuoteLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := quote.BuildQuoteLines(s.doc, entries, s.laborRate)
	s.doc.Quote = append(append([]model.QuoteLine(nil), s.doc.Quote...), lines...)
	return lines
}

// QuoteLines returns a snapshot of the document's quote.
func (s *Session) QuoteLines() []model.QuoteLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.QuoteLine(nil), s.doc.Quote...)
}

// RequestPricing synchronously inserts a pending placeholder quote line
// for the item at (si, ii) and resolves its price asynchronously. A second
// request for an item already in flight is rejected, not queued.
func (s *Session) RequestPricing(ctx context.Context, si, ii int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.estimator == nil {
		return "", ErrNoEstimator
	}
	if !s.doc.ValidIndex(si, ii) {
		return "", ErrNoSuchItem
	}
	key := pricingKey{Section: si, Item: ii}
	if _, busy := s.inflight[key]; busy {
		return "", ErrPricingInFlight
	}

	sec := s.doc.Sections[si]
	it := sec.Items[ii]
	line := model.QuoteLine{
		ID:          uuid.NewString(),
		SourceItem:  it.Label,
		Description: it.Label,
		Status:      it.Status,
		Provenance:  model.ProvenanceAI,
		Pricing:     model.PricingPending,
	}
	s.doc.Quote = append(append([]model.QuoteLine(nil), s.doc.Quote...), line)
	s.inflight[key] = struct{}{}

	req := pricing.Request{
		Section:         sec.Title,
		Item:            it.Label,
		Notes:           it.Notes,
		Recommendations: append([]string(nil), it.Recommendations...),
	}
	go s.resolvePricing(ctx, key, line.ID, req)
	return line.ID, nil
}

func (s *Session) resolvePricing(ctx context.Context, key pricingKey, lineID string, req pricing.Request) {
	resp, err := s.estimator.Estimate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, key)

	if err != nil {
		log.Printf("session pricing error line=%s: %v", lineID, err)
		return
	}
	if resp.Kind != pricing.KindEstimate {
		// Left pending for manual tech review.
		log.Printf("session pricing unrecognized response line=%s raw=%s", lineID, resp.Raw)
		return
	}
	s.patchQuoteLineLocked(lineID, resp.PartCost, resp.LaborHours)
}

// PatchQuoteLine updates the priced fields of an existing line by id. The
// patch always applies even if the source item's status has since moved
// on; filtering stale lines is the caller's concern.
func (s *Session) PatchQuoteLine(id string, partCost, laborHours float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patchQuoteLineLocked(id, partCost, laborHours)
}

func (s *Session) patchQuoteLineLocked(id string, partCost, laborHours float64) bool {
	for i, line := range s.doc.Quote {
		if line.ID != id {
			continue
		}
		patched := append([]model.QuoteLine(nil), s.doc.Quote...)
		patched[i].UnitPartCost = partCost
		patched[i].LaborHours = laborHours
		patched[i].TotalCost = model.LineTotal(partCost, laborHours, s.laborRate)
		patched[i].Pricing = model.PricingFinal
		s.doc.Quote = patched
		return true
	}
	return false
}

// PricingInFlight reports whether a pricing request is outstanding for
// the given item.
func (s *Session) PricingInFlight(si, ii int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[pricingKey{Section: si, Item: ii}]
	return busy
}
