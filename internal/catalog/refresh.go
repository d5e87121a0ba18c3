package catalog

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
)

// StartRefreshScheduler periodically reloads the catalog on a standard
// 5-field cron expression (minute hour day-of-month month day-of-week).
// Examples: "0 6 * * *" (daily 6am), "*/30 * * * *" (every 30 minutes).
// An empty schedule disables the refresh.
func (p *Provider) StartRefreshScheduler(schedule string) error {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Catalog refresh disabled (catalog_refresh_schedule not set)")
		return nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid catalog_refresh_schedule '%s': %w", schedule, err)
	}
	log.Printf("Catalog refresh scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			log.Printf("Next catalog refresh at %s (in %s)", next.Format("Mon Jan 2 15:04"), next.Sub(now).Round(time.Minute))
			time.Sleep(next.Sub(now))

			if err := p.Reload(); err != nil {
				log.Printf("catalog refresh error: %v", err)
				continue
			}
			log.Printf("catalog refreshed entries=%d", len(p.Entries()))
		}
	}()
	return nil
}

// WatchFile hot-reloads the provider whenever the given catalog file is
// rewritten. It blocks until ctx is done; callers run it in a goroutine.
func (p *Provider) WatchFile(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files rather than write them
	// in place, which drops a watch on the file itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(path)
	log.Printf("Watching catalog file %s", target)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := p.Reload(); err != nil {
				log.Printf("catalog reload error: %v", err)
				continue
			}
			log.Printf("catalog reloaded entries=%d", len(p.Entries()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog watcher error: %v", err)
		}
	}
}
