// Package itembank holds the local question bank: handwritten seed items
// plus any LLM-generated items admitted during a session. It is the
// fallback source when generation is unavailable or too slow.
package itembank

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

var (
	// ErrDuplicateItem is returned when adding an item whose ID exists.
	ErrDuplicateItem = errors.New("duplicate item")

	// ErrNoItemAvailable is returned when no item matches the request.
	ErrNoItemAvailable = errors.New("no item available")
)

// Bank is an in-memory item collection, safe for concurrent use. Selection
// is uniform over the candidates via the injected random source, so tests
// can pin the sequence.
type Bank struct {
	mu    sync.Mutex
	rng   *rand.Rand
	items map[string]Item
	// byConcept preserves insertion order so selection is reproducible
	// for a fixed seed.
	byConcept map[string][]string
}

// NewBank creates an empty bank using the given random source.
func NewBank(rng *rand.Rand) *Bank {
	return &Bank{
		rng:       rng,
		items:     make(map[string]Item),
		byConcept: make(map[string][]string),
	}
}

// Add validates and admits one item.
func (b *Bank) Add(it Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[it.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, it.ID)
	}
	b.items[it.ID] = it
	b.byConcept[it.ConceptID] = append(b.byConcept[it.ConceptID], it.ID)
	return nil
}

// Get returns one item by ID.
func (b *Bank) Get(id string) (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[id]
	return it, ok
}

// Len returns the number of admitted items.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns the items for one concept in insertion order.
func (b *Bank) Items(conceptID string) []Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.byConcept[conceptID]
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.items[id])
	}
	return out
}

// Pick selects one item for the concept at the given difficulty, skipping
// excluded IDs (already served this session). When no item matches the
// difficulty it returns ErrNoItemAvailable; callers relax the difficulty
// or the exclusions themselves.
func (b *Bank) Pick(conceptID string, difficulty Difficulty, exclude map[string]bool) (Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var candidates []string
	for _, id := range b.byConcept[conceptID] {
		if exclude[id] {
			continue
		}
		if b.items[id].Difficulty != difficulty {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return Item{}, fmt.Errorf("%w: concept %s difficulty %s", ErrNoItemAvailable, conceptID, difficulty)
	}
	return b.items[candidates[b.rng.Intn(len(candidates))]], nil
}

// PickAny is Pick without the difficulty constraint, the last fallback
// before giving up on a concept.
func (b *Bank) PickAny(conceptID string, exclude map[string]bool) (Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var candidates []string
	for _, id := range b.byConcept[conceptID] {
		if exclude[id] {
			continue
		}
		candidates = append(candidates, id)
	}
	if len(candidates) == 0 {
		return Item{}, fmt.Errorf("%w: concept %s", ErrNoItemAvailable, conceptID)
	}
	return b.items[candidates[b.rng.Intn(len(candidates))]], nil
}
