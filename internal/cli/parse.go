// Package cli translates the student's free-text input into typed
// commands. It is a pure UI-boundary layer: nothing here touches the
// policy or the store.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sabilabs/sabi/internal/itembank"
)

// Kind classifies one parsed input line.
type Kind int

const (
	// KindQuestion is the fallthrough: anything that is not a command is
	// a question for the chat tutor.
	KindQuestion Kind = iota
	KindTopic
	KindDifficulty
	KindQuizLength
	KindPause
	KindResume
	KindSummary
	KindRetry
	KindReview
	KindAdvance
	KindExplore
	KindHint
	KindLesson
	KindAnswer
	KindQuit
)

// Command is one typed operation for the interactive loop.
type Command struct {
	Kind Kind

	// Topic carries the free text after tema:, repasar, or avanzar.
	Topic string

	// Difficulty is set for KindDifficulty.
	Difficulty itembank.Difficulty

	// N is the quiz length for KindQuizLength.
	N int

	// Text is the raw question for KindQuestion, or the chosen option
	// letter for KindAnswer.
	Text string
}

// difficulties maps the Spanish difficulty words to bands.
var difficulties = map[string]itembank.Difficulty{
	"facil":   itembank.Easy,
	"media":   itembank.Medium,
	"medio":   itembank.Medium,
	"dificil": itembank.Hard,
}

// Parse turns one input line into a Command. An unrecognized line is a
// chat question, never an error; malformed arguments to a recognized
// command do error so the student can correct them.
func Parse(line string) (Command, error) {
	raw := strings.TrimSpace(line)
	lower := strings.ToLower(raw)

	if strings.HasPrefix(lower, "tema:") {
		topic := strings.TrimSpace(raw[len("tema:"):])
		if topic == "" {
			return Command{}, fmt.Errorf("tema: necesita un tema, por ejemplo \"tema: fracciones\"")
		}
		return Command{Kind: KindTopic, Topic: topic}, nil
	}

	if rest, ok := strings.CutPrefix(lower, "dificultad:"); ok {
		word := normalizeWord(strings.TrimSpace(rest))
		d, ok := difficulties[word]
		if !ok {
			return Command{}, fmt.Errorf("dificultad %q no reconocida: usa fácil, media o difícil", strings.TrimSpace(rest))
		}
		return Command{Kind: KindDifficulty, Difficulty: d}, nil
	}

	if rest, ok := strings.CutPrefix(lower, "quiz:"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("quiz: necesita un número positivo, por ejemplo \"quiz: 5\"")
		}
		return Command{Kind: KindQuizLength, N: n}, nil
	}

	word, rest := splitFirstWord(raw)
	switch normalizeWord(strings.ToLower(word)) {
	case "pausar", "pausa":
		return Command{Kind: KindPause}, nil
	case "retomar", "continuar":
		return Command{Kind: KindResume}, nil
	case "resumen":
		return Command{Kind: KindSummary}, nil
	case "reintentar":
		return Command{Kind: KindRetry}, nil
	case "repasar":
		return Command{Kind: KindReview, Topic: rest}, nil
	case "avanzar":
		return Command{Kind: KindAdvance, Topic: rest}, nil
	case "explorar":
		return Command{Kind: KindExplore}, nil
	case "pista", "ayuda":
		return Command{Kind: KindHint}, nil
	case "leccion":
		return Command{Kind: KindLesson}, nil
	case "salir", "adios":
		return Command{Kind: KindQuit}, nil
	}

	// A lone option letter is an answer to the current item.
	if len(lower) == 1 && lower[0] >= 'a' && lower[0] <= 'd' && rest == "" {
		return Command{Kind: KindAnswer, Text: strings.ToUpper(lower)}, nil
	}

	if raw == "" {
		return Command{}, fmt.Errorf("escribe una respuesta, un comando o una pregunta")
	}
	return Command{Kind: KindQuestion, Text: raw}, nil
}

func splitFirstWord(s string) (word, rest string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), fields[0]))
}

// normalizeWord strips the accents students may or may not type.
func normalizeWord(s string) string {
	r := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")
	return r.Replace(s)
}
