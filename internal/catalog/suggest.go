package catalog

import (
	"context"
	"sync"
	"time"
)

// SuggestionFetcher produces suggestions for a query.
type SuggestionFetcher func(ctx context.Context, query string) ([]Suggestion, error)

// SuggestionHandler receives results of the most recent trigger. Superseded
// fetches are never delivered.
type SuggestionHandler func(query string, suggestions []Suggestion, err error)

// SuggestionDebouncer collapses bursts of Trigger calls into one fetch after a
// quiet period. Each Trigger cancels the pending timer and any in-flight
// fetch; a response belonging to an older trigger is discarded so a slow
// earlier request can never overwrite a faster later one.
type SuggestionDebouncer struct {
	mu         sync.Mutex
	quiet      time.Duration
	fetch      SuggestionFetcher
	handler    SuggestionHandler
	timer      *time.Timer
	cancel     context.CancelFunc
	generation uint64
	stopped    bool
}

// NewSuggestionDebouncer builds a debouncer with the given quiet period.
func NewSuggestionDebouncer(quiet time.Duration, fetch SuggestionFetcher, handler SuggestionHandler) *SuggestionDebouncer {
	return &SuggestionDebouncer{
		quiet:   quiet,
		fetch:   fetch,
		handler: handler,
	}
}

// Trigger records a new keystroke. The fetch fires once the quiet period
// elapses with no further triggers.
func (d *SuggestionDebouncer) Trigger(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.generation++
	gen := d.generation

	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}

	d.timer = time.AfterFunc(d.quiet, func() {
		d.run(gen, query)
	})
}

// Stop cancels any pending timer and in-flight fetch.
func (d *SuggestionDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *SuggestionDebouncer) run(gen uint64, query string) {
	d.mu.Lock()
	if d.stopped || gen != d.generation {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.mu.Unlock()

	suggestions, err := d.fetch(ctx, query)

	d.mu.Lock()
	stale := d.stopped || gen != d.generation
	if !stale && d.cancel != nil {
		d.cancel = nil
	}
	d.mu.Unlock()
	cancel()

	if stale {
		return
	}
	d.handler(query, suggestions, err)
}
