// Package chat answers free-form student questions and produces hints
// for the current item. Responses are plain text, no schema.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/llm"
)

const systemPrompt = `Eres un tutor de matemáticas amable para estudiantes de secundaria. Responde siempre en español, con explicaciones cortas y concretas. Nunca des la respuesta de un ejercicio en curso; guía con preguntas y pistas.`

// Config bounds chat responses.
type Config struct {
	MaxTokens   int
	Temperature float64
	MaxHistory  int
}

// DefaultConfig returns the production chat settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.6,
		MaxHistory:  12,
	}
}

// Tutor holds a running conversation with the student.
type Tutor struct {
	provider llm.Provider
	cfg      Config
	history  []llm.Message
}

// NewTutor creates a chat tutor.
func NewTutor(provider llm.Provider, cfg Config) *Tutor {
	return &Tutor{provider: provider, cfg: cfg}
}

// Ask answers a free-form question, keeping conversation history so
// follow-ups ("¿y por qué?") make sense.
func (t *Tutor) Ask(ctx context.Context, question string) (string, error) {
	ctx = llm.WithPurpose(ctx, "chat")

	t.history = append(t.history, llm.Message{Role: llm.RoleUser, Content: question})
	t.trimHistory()

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    t.history,
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		// Drop the unanswered turn so a retry doesn't duplicate it.
		t.history = t.history[:len(t.history)-1]
		return "", fmt.Errorf("chat: %w", err)
	}

	answer := resp.Text()
	t.history = append(t.history, llm.Message{Role: llm.RoleAssistant, Content: answer})
	return answer, nil
}

// Hint produces one scaffolding hint for the item. hintsGiven makes
// successive hints progressively more concrete without revealing the
// answer.
func (t *Tutor) Hint(ctx context.Context, item itembank.Item, hintsGiven int) (string, error) {
	ctx = llm.WithPurpose(ctx, "hint")

	var b strings.Builder
	fmt.Fprintf(&b, "Ejercicio: %s\n", item.Question)
	fmt.Fprintf(&b, "Opciones: %s\n", strings.Join(item.Options, " | "))
	fmt.Fprintf(&b, "Respuesta correcta (NO la reveles): %s\n", item.CorrectAnswer)
	fmt.Fprintf(&b, "Pistas ya dadas: %d\n", hintsGiven)
	b.WriteString("\nDa UNA pista corta que acerque al estudiante a la respuesta sin revelarla. Si ya hubo pistas, sé un poco más concreto que la anterior.")

	resp, err := t.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens:   t.cfg.MaxTokens,
		Temperature: t.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("hint: %w", err)
	}
	return resp.Text(), nil
}

// Reset clears the conversation history, used when the topic changes.
func (t *Tutor) Reset() {
	t.history = nil
}

// trimHistory keeps the most recent MaxHistory turns.
func (t *Tutor) trimHistory() {
	if t.cfg.MaxHistory > 0 && len(t.history) > t.cfg.MaxHistory {
		t.history = t.history[len(t.history)-t.cfg.MaxHistory:]
	}
}
