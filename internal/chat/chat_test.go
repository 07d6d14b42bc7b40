package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/llm"
)

func TestAskKeepsHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`"Un polinomio es una suma de monomios."`)},
		llm.MockResponse{Content: json.RawMessage(`"Porque cada término tiene exponente entero no negativo."`)},
	)
	tutor := NewTutor(mock, DefaultConfig())

	first, err := tutor.Ask(context.Background(), "¿Qué es un polinomio?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(first, "polinomio") {
		t.Errorf("answer = %q", first)
	}

	if _, err := tutor.Ask(context.Background(), "¿Y por qué?"); err != nil {
		t.Fatalf("ask follow-up: %v", err)
	}

	// The second request must carry the full exchange so far.
	second := mock.Calls[1]
	if len(second.Messages) != 3 {
		t.Fatalf("history length = %d, want 3", len(second.Messages))
	}
	if second.Messages[1].Role != llm.RoleAssistant {
		t.Errorf("middle turn role = %q, want assistant", second.Messages[1].Role)
	}
	// Chat is schemaless.
	if second.Schema != nil {
		t.Error("chat request must not carry a schema")
	}
}

func TestAskErrorDropsUnansweredTurn(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}},
		llm.MockResponse{Content: json.RawMessage(`"ahora sí"`)},
	)
	tutor := NewTutor(mock, DefaultConfig())

	if _, err := tutor.Ask(context.Background(), "hola"); err == nil {
		t.Fatal("expected error")
	}

	if _, err := tutor.Ask(context.Background(), "hola"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	// The retry must not contain the failed turn twice.
	if got := len(mock.Calls[1].Messages); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestHistoryTrimmed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 4

	var canned []llm.MockResponse
	for range 6 {
		canned = append(canned, llm.MockResponse{Content: json.RawMessage(`"ok"`)})
	}
	mock := llm.NewMockProvider(canned...)
	tutor := NewTutor(mock, cfg)

	for range 6 {
		if _, err := tutor.Ask(context.Background(), "pregunta"); err != nil {
			t.Fatalf("ask: %v", err)
		}
	}

	last := mock.Calls[len(mock.Calls)-1]
	if len(last.Messages) > cfg.MaxHistory {
		t.Errorf("history length = %d, want at most %d", len(last.Messages), cfg.MaxHistory)
	}
}

func TestHintPromptNamesItemAndCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`"Piensa en el denominador común."`),
	})
	tutor := NewTutor(mock, DefaultConfig())

	item := itembank.Item{
		ID:            "i1",
		ConceptID:     "1_ARIT_03",
		Question:      "¿Cuánto es 1/2 + 1/4?",
		Options:       []string{"3/4", "2/6", "1/4", "2/4"},
		CorrectAnswer: "3/4",
		Difficulty:    itembank.Easy,
	}

	hint, err := tutor.Hint(context.Background(), item, 1)
	if err != nil {
		t.Fatalf("hint: %v", err)
	}
	if hint == "" {
		t.Error("empty hint")
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{"1/2 + 1/4", "Pistas ya dadas: 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("hint prompt missing %q", want)
		}
	}
}
