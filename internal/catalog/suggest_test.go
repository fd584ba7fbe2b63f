package catalog

import (
	"context"
	"sync"
	"testing"
	"time"
)

type deliveredSet struct {
	mu      sync.Mutex
	queries []string
	results [][]Suggestion
}

func (d *deliveredSet) handler(query string, suggestions []Suggestion, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries = append(d.queries, query)
	d.results = append(d.results, suggestions)
}

func (d *deliveredSet) snapshot() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

func TestDebouncerCollapsesBurstToOneFetch(t *testing.T) {
	var mu sync.Mutex
	var fetched []string
	fetch := func(ctx context.Context, query string) ([]Suggestion, error) {
		mu.Lock()
		fetched = append(fetched, query)
		mu.Unlock()
		return []Suggestion{{OEMSku: "LWA-001"}}, nil
	}

	delivered := &deliveredSet{}
	d := NewSuggestionDebouncer(20*time.Millisecond, fetch, delivered.handler)
	defer d.Stop()

	for _, q := range []string{"t", "tr", "tra", "tract"} {
		d.Trigger(q)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	gotFetched := append([]string(nil), fetched...)
	mu.Unlock()
	if len(gotFetched) != 1 || gotFetched[0] != "tract" {
		t.Fatalf("expected a single fetch for the final query, got %v", gotFetched)
	}
	if got := delivered.snapshot(); len(got) != 1 || got[0] != "tract" {
		t.Fatalf("expected one delivery for the final query, got %v", got)
	}
}

func TestDebouncerDiscardsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context, query string) ([]Suggestion, error) {
		if query == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return []Suggestion{{Name: "stale"}}, nil
		}
		return []Suggestion{{Name: "fresh"}}, nil
	}

	delivered := &deliveredSet{}
	d := NewSuggestionDebouncer(5*time.Millisecond, fetch, delivered.handler)
	defer d.Stop()

	d.Trigger("slow")
	time.Sleep(20 * time.Millisecond) // slow fetch is now in flight

	d.Trigger("fast")
	time.Sleep(20 * time.Millisecond)
	close(release)
	time.Sleep(20 * time.Millisecond)

	got := delivered.snapshot()
	if len(got) != 1 || got[0] != "fast" {
		t.Fatalf("stale response must be discarded, deliveries: %v", got)
	}
}

func TestDebouncerStopSuppressesPendingFetch(t *testing.T) {
	fetch := func(ctx context.Context, query string) ([]Suggestion, error) {
		t.Errorf("fetch must not run after Stop, query %q", query)
		return nil, nil
	}

	d := NewSuggestionDebouncer(10*time.Millisecond, fetch, func(string, []Suggestion, error) {})
	d.Trigger("axle")
	d.Stop()

	time.Sleep(50 * time.Millisecond)
}
