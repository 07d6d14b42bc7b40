package cli

import (
	"testing"

	"github.com/sabilabs/sabi/internal/itembank"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{"topic", "tema: Fracciones", Command{Kind: KindTopic, Topic: "Fracciones"}},
		{"topic no space", "tema:ecuaciones de primer grado", Command{Kind: KindTopic, Topic: "ecuaciones de primer grado"}},
		{"difficulty accented", "dificultad: fácil", Command{Kind: KindDifficulty, Difficulty: itembank.Easy}},
		{"difficulty plain", "Dificultad: dificil", Command{Kind: KindDifficulty, Difficulty: itembank.Hard}},
		{"difficulty medium", "dificultad: media", Command{Kind: KindDifficulty, Difficulty: itembank.Medium}},
		{"quiz length", "quiz: 10", Command{Kind: KindQuizLength, N: 10}},
		{"pause", "pausar", Command{Kind: KindPause}},
		{"resume", "retomar", Command{Kind: KindResume}},
		{"summary", "resumen", Command{Kind: KindSummary}},
		{"retry", "reintentar", Command{Kind: KindRetry}},
		{"review bare", "repasar", Command{Kind: KindReview}},
		{"review topic", "repasar fracciones", Command{Kind: KindReview, Topic: "fracciones"}},
		{"advance topic", "Avanzar polinomios", Command{Kind: KindAdvance, Topic: "polinomios"}},
		{"explore", "explorar", Command{Kind: KindExplore}},
		{"hint", "pista", Command{Kind: KindHint}},
		{"hint alias", "ayuda", Command{Kind: KindHint}},
		{"lesson accented", "lección", Command{Kind: KindLesson}},
		{"quit", "salir", Command{Kind: KindQuit}},
		{"answer lower", "b", Command{Kind: KindAnswer, Text: "B"}},
		{"answer upper", "D", Command{Kind: KindAnswer, Text: "D"}},
		{"question fallthrough", "¿por qué se invierte la fracción?", Command{Kind: KindQuestion, Text: "¿por qué se invierte la fracción?"}},
		{"question single word", "porque", Command{Kind: KindQuestion, Text: "porque"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parse %q = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"tema:",
		"tema:   ",
		"dificultad: imposible",
		"quiz: cero",
		"quiz: -3",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("parse %q: expected error", input)
		}
	}
}
