// Package app wires the engine together for the CLI: config, vocabulary,
// catalog source, session, and the optional AI pricing estimator.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"inspectbot/internal/catalog"
	"inspectbot/internal/config"
	"inspectbot/internal/integrations/pricing"
	"inspectbot/internal/model"
	"inspectbot/internal/normalize"
	"inspectbot/internal/quote"
	"inspectbot/internal/session"
	"inspectbot/internal/storage/sqlite"
	"inspectbot/internal/summary"
	"inspectbot/internal/vocab"
)

func buildResolver(cfg config.Config) *vocab.Resolver {
	res := vocab.NewResolver()
	if cfg.VocabularyPath != "" {
		if err := res.LoadOverlay(cfg.VocabularyPath); err != nil {
			log.Printf("vocabulary overlay skipped path=%s err=%v", cfg.VocabularyPath, err)
		} else {
			log.Printf("Loaded vocabulary overlay from %s", cfg.VocabularyPath)
		}
	}
	return res
}

// buildCatalogProvider prefers the YAML catalog file when configured and
// falls back to the sqlite store otherwise.
func buildCatalogProvider(cfg config.Config) (*catalog.Provider, error) {
	if cfg.CatalogPath != "" {
		return catalog.NewProvider(catalog.FileSource{Path: cfg.CatalogPath})
	}
	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return catalog.NewProvider(sqlite.Store{DB: db})
}

func newSession(cfg config.Config, doc model.Document, res *vocab.Resolver) *session.Session {
	opts := session.Options{
		HistoryDepth: cfg.HistoryDepth,
		LaborRate:    cfg.LaborRate,
	}
	if cfg.PricingProvider == "anthropic" {
		opts.Estimator = pricing.NewClient(cfg.AnthropicAPIKey, cfg.PricingModel)
	}
	return session.New(doc, res, opts)
}

// LoadDocument reads and normalizes an inspection document file. An empty
// path yields the built-in template.
func LoadDocument(path string) (model.Document, error) {
	if path == "" {
		return model.New(defaultSections()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("read document: %w", err)
	}
	sections := normalize.Normalize(data)
	if len(sections) == 0 {
		return model.Document{}, fmt.Errorf("document %s contains no usable sections", path)
	}
	return model.New(sections), nil
}

// Replay feeds utterance lines (one per line; blank lines and #-comments
// skipped) through parse and dispatch, then prints the summary and, when
// a catalog is available, the derived quote.
func Replay(cfg config.Config, docPath, transcriptPath string) error {
	res := buildResolver(cfg)
	doc, err := LoadDocument(docPath)
	if err != nil {
		return err
	}

	provider, err := buildCatalogProvider(cfg)
	if err != nil {
		return err
	}
	if err := provider.StartRefreshScheduler(cfg.CatalogRefreshSchedule); err != nil {
		return err
	}
	if cfg.CatalogPath != "" {
		go func() {
			if err := provider.WatchFile(context.Background(), cfg.CatalogPath); err != nil && err != context.Canceled {
				log.Printf("catalog watch stopped: %v", err)
			}
		}()
	}

	var in io.Reader = os.Stdin
	if transcriptPath != "" && transcriptPath != "-" {
		f, err := os.Open(transcriptPath)
		if err != nil {
			return fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		in = f
	}

	sess := newSession(cfg, doc, res)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		applied, diags := sess.HandleUtterance(line)
		for _, d := range diags {
			log.Printf("replay diagnostic kind=%s raw=%q", d.Kind, d.Raw)
		}
		log.Printf("replay utterance=%q applied=%d", line, applied)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	lines := sess.BuildQuote(provider.Entries())
	final := sess.Document()
	printSummary(os.Stdout, final)
	printQuote(os.Stdout, final.Quote)

	if len(lines) > 0 && cfg.CatalogPath == "" {
		db, err := sqlite.InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer db.Close()
		sessionID := uuid.NewString()
		if err := sqlite.SaveQuoteLines(db, sessionID, final.Quote); err != nil {
			return fmt.Errorf("save quote: %w", err)
		}
		log.Printf("quote snapshot saved session=%s lines=%d", sessionID, len(final.Quote))
	}
	return nil
}

// Quote prints the quote lines derived from a document file.
func Quote(cfg config.Config, docPath string) error {
	doc, err := LoadDocument(docPath)
	if err != nil {
		return err
	}
	provider, err := buildCatalogProvider(cfg)
	if err != nil {
		return err
	}
	lines := quote.BuildQuoteLines(doc, provider.Entries(), cfg.LaborRate)
	printQuote(os.Stdout, lines)
	return nil
}

// ImportCatalog loads a YAML catalog file into the sqlite store.
func ImportCatalog(cfg config.Config, path string) error {
	entries, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	db, err := sqlite.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	inserted, err := sqlite.ReplaceCatalogEntries(db, entries)
	if err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	log.Printf("catalog imported entries=%d db=%s", inserted, cfg.DBPath)
	return nil
}

func printSummary(w io.Writer, doc model.Document) {
	fmt.Fprintf(w, "Inspection summary (status: %s)\n", doc.Status)
	for _, rec := range summary.Extract(doc) {
		status := string(rec.Status)
		if status == "" {
			status = "unset"
		}
		fmt.Fprintf(w, "  [%s] %s: %s", rec.SectionTitle, rec.ItemLabel, status)
		if rec.Value != "" {
			fmt.Fprintf(w, " %s%s", rec.Value, rec.Unit)
		}
		if rec.Notes != "" {
			fmt.Fprintf(w, " - %s", rec.Notes)
		}
		fmt.Fprintln(w)
	}
}

func printQuote(w io.Writer, lines []model.QuoteLine) {
	if len(lines) == 0 {
		fmt.Fprintln(w, "No quote lines.")
		return
	}
	fmt.Fprintln(w, "Quote:")
	for _, l := range lines {
		fmt.Fprintf(w, "  %s (%s): parts $%.2f + %.1fh labor = $%.2f [%s]\n",
			l.Description, l.SourceItem, l.UnitPartCost, l.LaborHours, l.TotalCost, l.Provenance)
	}
}
