package lessons

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/llm"
)

func validLessonJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Suma de fracciones con distinto denominador",
		"explanation": "Para sumar fracciones con distinto denominador, primero busca un denominador común. Luego convierte cada fracción y suma los numeradores.",
		"worked_example": "1. 1/2 + 1/3\n2. Denominador común: 6\n3. 3/6 + 2/6 = 5/6",
		"practice_question": {
			"text": "¿Cuánto es 1/2 + 1/4?",
			"answer": "3/4",
			"explanation": "Con denominador común 4: 2/4 + 1/4 = 3/4."
		}
	}`)
}

func testConcept() conceptgraph.Concept {
	return conceptgraph.Concept{
		ID:      "1_ARIT_03",
		Name:    "Fracciones",
		Subject: "Aritmética",
		Grade:   "1ro de secundaria",
	}
}

func awaitLesson(t *testing.T, svc *Service) (*Lesson, bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if lesson, ok := svc.ConsumeLesson(); ok {
			return lesson, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil, false
}

func TestService_GeneratesLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestLesson(t.Context(), LessonInput{
		Concept:  testConcept(),
		Accuracy: 0.4,
		RecentErrors: []string{
			"eligió 2/6 en 1/3 + 1/3 (correcto: 2/3)",
		},
	})

	lesson, ok := awaitLesson(t, svc)
	if !ok || lesson == nil {
		t.Fatal("expected lesson to be generated")
	}
	if lesson.ConceptID != "1_ARIT_03" {
		t.Errorf("concept = %q", lesson.ConceptID)
	}
	if lesson.Title == "" || lesson.Explanation == "" || lesson.WorkedExample == "" {
		t.Errorf("incomplete lesson: %+v", lesson)
	}
	if lesson.PracticeQuestion.Answer != "3/4" {
		t.Errorf("practice answer = %q, want 3/4", lesson.PracticeQuestion.Answer)
	}
}

func TestService_ConsumeClearsLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestLesson(t.Context(), LessonInput{Concept: testConcept()})
	if _, ok := awaitLesson(t, svc); !ok {
		t.Fatal("expected lesson")
	}

	if _, ok := svc.ConsumeLesson(); ok {
		t.Error("second consume must return false")
	}
}

func TestService_LLMError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	svc.RequestLesson(t.Context(), LessonInput{Concept: testConcept()})

	time.Sleep(100 * time.Millisecond)

	if lesson, ok := svc.ConsumeLesson(); ok && lesson != nil {
		t.Error("expected no lesson on LLM error")
	}
}

func TestService_AwaitLesson(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	svc := NewService(mock, DefaultConfig())

	svc.RequestLesson(t.Context(), LessonInput{Concept: testConcept()})

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	lesson, ok := svc.AwaitLesson(ctx)
	if !ok || lesson == nil {
		t.Fatal("expected lesson from await")
	}
	if lesson.ConceptID != "1_ARIT_03" {
		t.Errorf("concept = %q", lesson.ConceptID)
	}

	// The slot is cleared.
	if _, ok := svc.ConsumeLesson(); ok {
		t.Error("consume after await must return false")
	}
}

func TestService_AwaitLessonFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	svc.RequestLesson(t.Context(), LessonInput{Concept: testConcept()})

	// A failed generation must resolve the wait, not run out the clock.
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	if lesson, ok := svc.AwaitLesson(ctx); ok || lesson != nil {
		t.Error("expected no lesson after a failed generation")
	}
}

func TestService_PromptCarriesWeakPrerequisites(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validLessonJSON()})
	svc := NewService(mock, DefaultConfig())

	lesson, err := svc.Generate(t.Context(), LessonInput{
		Concept:           testConcept(),
		WeakPrerequisites: []string{"Números enteros"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if lesson == nil {
		t.Fatal("expected lesson")
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "micro-lesson" {
		t.Error("expected schema name 'micro-lesson'")
	}
	if !strings.Contains(req.Messages[0].Content, "Números enteros") {
		t.Error("prompt missing weak prerequisites")
	}
}
