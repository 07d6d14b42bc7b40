package itemgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
)

// gateGenerator blocks each Generate call until the test releases it.
type gateGenerator struct {
	release chan struct{}
	item    itembank.Item
	err     error
}

func (g *gateGenerator) Generate(ctx context.Context, _ GenerateInput) (itembank.Item, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return itembank.Item{}, ctx.Err()
	}
	return g.item, g.err
}

func TestServiceDeliversResult(t *testing.T) {
	gen := &gateGenerator{
		release: make(chan struct{}),
		item:    itembank.Item{ID: "gen-1", ConceptID: "c"},
	}
	svc := NewService(gen, time.Second)

	token := svc.Request(context.Background(), GenerateInput{})

	// Nothing ready while generation runs.
	if _, ok := svc.Consume(token); ok {
		t.Fatal("consume must report not-ready while in flight")
	}

	close(gen.release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, ok := svc.Await(ctx, token)
	if !ok {
		t.Fatal("await timed out")
	}
	if res.Err != nil || res.Item.ID != "gen-1" {
		t.Errorf("result = %+v", res)
	}

	// The slot is cleared after consumption.
	if _, ok := svc.Consume(token); ok {
		t.Error("result must be consumed once")
	}
}

// keyedGenerator serves per-concept gated results so two overlapping
// requests can be resolved in a controlled order.
type keyedGenerator struct {
	gates map[string]*gateGenerator
}

func (g *keyedGenerator) Generate(ctx context.Context, input GenerateInput) (itembank.Item, error) {
	return g.gates[input.Concept.ID].Generate(ctx, input)
}

func TestServiceDiscardsSupersededResult(t *testing.T) {
	oldGate := &gateGenerator{
		release: make(chan struct{}),
		item:    itembank.Item{ID: "old"},
	}
	newGate := &gateGenerator{
		release: func() chan struct{} { c := make(chan struct{}); close(c); return c }(),
		item:    itembank.Item{ID: "new"},
	}
	gen := &keyedGenerator{gates: map[string]*gateGenerator{
		"c-old": oldGate,
		"c-new": newGate,
	}}
	svc := NewService(gen, time.Second)

	oldToken := svc.Request(context.Background(), GenerateInput{
		Concept: conceptgraph.Concept{ID: "c-old"},
	})

	// Student moved on: a new request supersedes the old one.
	newToken := svc.Request(context.Background(), GenerateInput{
		Concept: conceptgraph.Concept{ID: "c-new"},
	})

	// Let the old generation finish after the new request was issued.
	close(oldGate.release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, ok := svc.Await(ctx, newToken)
	if !ok {
		t.Fatal("await timed out")
	}
	if res.Item.ID != "new" {
		t.Errorf("item = %q, want new", res.Item.ID)
	}

	// The old token never yields anything.
	if _, ok := svc.Consume(oldToken); ok {
		t.Error("superseded result must be dropped")
	}
}

func TestServiceTimesOut(t *testing.T) {
	gen := &gateGenerator{release: make(chan struct{})} // never released
	svc := NewService(gen, 10*time.Millisecond)

	token := svc.Request(context.Background(), GenerateInput{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	res, ok := svc.Await(ctx, token)
	if !ok {
		t.Fatal("await timed out waiting for the timeout result")
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", res.Err)
	}
}
