package itemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/llm"
)

func genInput() GenerateInput {
	return GenerateInput{
		Concept: conceptgraph.Concept{
			ID:      "1_ARIT_03",
			Name:    "Fracciones",
			Subject: "Aritmética",
			Grade:   "1ro de secundaria",
		},
		Difficulty:   itembank.Medium,
		StudentGrade: "2do de secundaria",
	}
}

func validPayload() json.RawMessage {
	return json.RawMessage(`{
		"question": "¿Cuál es el resultado de 1/2 + 1/4?",
		"options": ["3/4", "2/6", "1/4", "2/4"],
		"correct_answer": "3/4",
		"explanation": "Con denominador común 4: 2/4 + 1/4 = 3/4.",
		"difficulty": "medium"
	}`)
}

func TestGenerateAdmitsValidItem(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	g := New(mock, DefaultConfig())

	item, err := g.Generate(context.Background(), genInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if item.ConceptID != "1_ARIT_03" {
		t.Errorf("concept = %q", item.ConceptID)
	}
	if !item.Generated {
		t.Error("generated flag not set")
	}
	if item.ID == "" {
		t.Error("item must get an ID")
	}
	if item.Difficulty != itembank.Medium {
		t.Errorf("difficulty = %q", item.Difficulty)
	}
	if err := item.Validate(); err != nil {
		t.Errorf("admitted item fails validation: %v", err)
	}
}

func TestGenerateRejectsAnswerNotInOptions(t *testing.T) {
	payload := json.RawMessage(`{
		"question": "¿Cuál es el resultado de 1/2 + 1/4?",
		"options": ["3/4", "2/6", "1/4", "2/4"],
		"correct_answer": "5/4",
		"explanation": "x",
		"difficulty": "medium"
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: payload})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), genInput())
	var target *llm.ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestGeneratePropagatesProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), genInput())
	var target *llm.ErrProviderUnavailable
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestGenerateSendsSchemaAndContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPayload()})
	g := New(mock, DefaultConfig())

	input := genInput()
	input.PriorQuestions = []string{"¿Cuánto es 1/2 de 8?"}
	input.RecentErrors = []string{"eligió 2/6 en 1/3 + 1/3 (correcto: 2/3)"}

	if _, err := g.Generate(context.Background(), input); err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "practice-item" {
		t.Fatalf("schema not sent: %+v", req.Schema)
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Fracciones", "medium", "¿Cuánto es 1/2 de 8?", "eligió 2/6"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestItemSchemaMatchesBankOptionCount(t *testing.T) {
	props := ItemSchema.Definition["properties"].(map[string]any)
	options := props["options"].(map[string]any)
	if options["minItems"] != itembank.OptionCount || options["maxItems"] != itembank.OptionCount {
		t.Errorf("schema option bounds = %v..%v, want %d (what the bank validates)",
			options["minItems"], options["maxItems"], itembank.OptionCount)
	}
}

func TestEnumerateKeepsMostRecent(t *testing.T) {
	entries := []string{"a", "b", "c", "d"}
	got := enumerate(entries, 2)
	if strings.Contains(got, "a") || !strings.Contains(got, "d") {
		t.Errorf("enumerate = %q", got)
	}
	if enumerate(nil, 5) != "Ninguna" {
		t.Errorf("empty list = %q", enumerate(nil, 5))
	}
}
