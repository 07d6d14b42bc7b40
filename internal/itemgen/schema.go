package itemgen

import (
	"fmt"

	"github.com/sabilabs/sabi/internal/itembank"
	"github.com/sabilabs/sabi/internal/llm"
)

// ItemSchema is the JSON schema every generated practice item must
// conform to. Validation runs inside the provider before the item
// reaches the bank.
var ItemSchema = &llm.Schema{
	Name:        "practice-item",
	Description: "A single multiple-choice math practice item in Spanish",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt in Spanish, plain text, self-contained",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    itembank.OptionCount,
				"maxItems":    itembank.OptionCount,
				"description": fmt.Sprintf("Exactly %d answer options, one correct. Distractors reflect common mistakes.", itembank.OptionCount),
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The text of the correct option, exactly as it appears in options",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief worked solution in Spanish, shown after the student answers",
			},
			"difficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"easy", "medium", "hard"},
				"description": "The difficulty band the item was written for",
			},
		},
		"required":             []any{"question", "options", "correct_answer", "explanation", "difficulty"},
		"additionalProperties": false,
	},
}
