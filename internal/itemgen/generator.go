// Package itemgen produces practice items with an LLM, validated against
// a JSON schema and the bank's structural rules before they are served.
package itemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/sabilabs/sabi/internal/conceptgraph"
	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/llm"
)

// GenerateInput carries everything the prompt needs for one item.
type GenerateInput struct {
	// Concept is the target concept.
	Concept conceptgraph.Concept

	// Difficulty is the band the policy asked for.
	Difficulty itembank.Difficulty

	// PriorQuestions holds the question texts already served this session
	// for this concept, for deduplication.
	PriorQuestions []string

	// RecentErrors describes the student's recent mistakes on this
	// concept, e.g. "eligió 613 en 345 + 278 (correcto: 623)".
	RecentErrors []string

	// StudentGrade personalizes wording when it differs from the
	// concept's grade.
	StudentGrade string
}

// Generator produces one validated practice item.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (itembank.Item, error)
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// itemOutput is the raw LLM response before admission checks.
type itemOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (itembank.Item, error) {
	ctx = llm.WithPurpose(ctx, "item-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      ItemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return itembank.Item{}, fmt.Errorf("item generation: %w", err)
	}

	var raw itemOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return itembank.Item{}, fmt.Errorf("parse item response: %w", err)
	}

	item := itembank.Item{
		ID:            uuid.NewString(),
		ConceptID:     input.Concept.ID,
		Question:      raw.Question,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Explanation:   raw.Explanation,
		Difficulty:    itembank.Difficulty(raw.Difficulty),
		Generated:     true,
	}

	// The schema guarantees shape; Validate catches semantic problems
	// like a correct answer that is not among the options.
	if err := item.Validate(); err != nil {
		return itembank.Item{}, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     err,
		}
	}

	return item, nil
}
