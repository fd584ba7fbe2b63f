package cart

import (
	"context"
	"sync"
	"time"
)

// AddOutcome distinguishes the user-facing notice for AddToQuote.
type AddOutcome string

const (
	OutcomeAdded     AddOutcome = "added"
	OutcomeIncreased AddOutcome = "quantity_increased"
)

// Snapshot is the post-mutation view handed to subscribers and callers.
// Derived counts are recomputed on every mutation so dependents never observe
// a pre-mutation value.
type Snapshot struct {
	Lines         []CartLine `json:"lines"`
	ItemCount     int        `json:"itemCount"`
	TotalQuantity int        `json:"totalQuantity"`
	Expanded      bool       `json:"expanded"`
}

// Persister saves the serialized line list after each mutation. Failures must
// not surface to cart callers; the store degrades to in-memory operation.
type Persister interface {
	Save(ctx context.Context, lines []CartLine) error
}

// StoreOptions configures an explicitly constructed cart store.
type StoreOptions struct {
	Lines     []CartLine
	Images    ImageResolver
	Persister Persister
	Now       func() time.Time
}

// Store holds the authoritative set of cart lines for one cart. All mutations
// run under a single lock so rapid-fire calls cannot lose updates.
type Store struct {
	mu          sync.Mutex
	lines       []CartLine
	expanded    bool
	images      ImageResolver
	persister   Persister
	now         func() time.Time
	degraded    bool
	subscribers []func(Snapshot)
}

// NewStore builds a store seeded with previously persisted lines.
func NewStore(opts StoreOptions) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	lines := make([]CartLine, len(opts.Lines))
	copy(lines, opts.Lines)
	return &Store{
		lines:     lines,
		images:    opts.Images,
		persister: opts.Persister,
		now:       now,
	}
}

// Subscribe registers a callback invoked with the post-mutation snapshot after
// every state change.
func (s *Store) Subscribe(fn func(Snapshot)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddToQuote inserts a new line with quantity 1 or increments the existing
// line for the same SKU. It never fails and always expands the cart display.
func (s *Store) AddToQuote(ctx context.Context, product ProductInput) AddOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := OutcomeAdded
	if idx := s.indexOf(product.SKU); idx >= 0 {
		s.lines[idx].Quantity++
		outcome = OutcomeIncreased
	} else {
		s.lines = append(s.lines, CartLine{
			SKU:         product.SKU,
			Name:        product.Name,
			ImageURL:    s.images.Resolve(product),
			Description: product.Description,
			Quantity:    1,
			AddedAt:     s.now().UTC().Format(time.RFC3339),
		})
	}
	s.expanded = true
	s.afterMutation(ctx)
	return outcome
}

// RemoveFromQuote deletes the line for the SKU; missing SKUs are a no-op.
func (s *Store) RemoveFromQuote(ctx context.Context, sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	s.afterMutation(ctx)
}

// IncrementQuantity bumps an existing line by one. Unknown SKUs are ignored.
func (s *Store) IncrementQuantity(ctx context.Context, sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return
	}
	s.lines[idx].Quantity++
	s.afterMutation(ctx)
}

// DecrementQuantity lowers an existing line by one, removing the line instead
// of letting quantity reach zero.
func (s *Store) DecrementQuantity(ctx context.Context, sku string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return
	}
	if s.lines[idx].Quantity <= 1 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity--
	}
	s.afterMutation(ctx)
}

// UpdateQuantity sets the quantity directly; zero or below removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, sku string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(sku)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = quantity
	}
	s.afterMutation(ctx)
}

// GetQuantity returns the current quantity, or 0 when the SKU is absent.
func (s *Store) GetQuantity(sku string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(sku); idx >= 0 {
		return s.lines[idx].Quantity
	}
	return 0
}

// IsInQuote reports membership for the SKU.
func (s *Store) IsInQuote(sku string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(sku) >= 0
}

// ClearQuote empties the line list and collapses the display hint.
func (s *Store) ClearQuote(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.expanded = false
	s.afterMutation(ctx)
}

// Reset clears content and the expanded hint without persisting; used at
// teardown.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.expanded = false
	s.degraded = false
}

// ItemCount returns the number of distinct lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalQuantity returns the sum of all line quantities.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalQuantity(s.lines)
}

// Degraded reports whether a persistence failure put the store in
// in-memory-only mode.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Snapshot returns the current state with derived values.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) indexOf(sku string) int {
	for i := range s.lines {
		if s.lines[i].SKU == sku {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() Snapshot {
	lines := make([]CartLine, len(s.lines))
	copy(lines, s.lines)
	return Snapshot{
		Lines:         lines,
		ItemCount:     len(lines),
		TotalQuantity: totalQuantity(lines),
		Expanded:      s.expanded,
	}
}

// afterMutation persists and notifies while still holding the lock, so every
// subscriber observes the post-mutation state in mutation order.
func (s *Store) afterMutation(ctx context.Context) {
	snap := s.snapshotLocked()
	if s.persister != nil {
		if err := s.persister.Save(ctx, snap.Lines); err != nil {
			s.degraded = true
		} else {
			s.degraded = false
		}
	}
	for _, fn := range s.subscribers {
		fn(snap)
	}
}

func totalQuantity(lines []CartLine) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}
