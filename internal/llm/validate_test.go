package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-item",
		Description: "test schema",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string"},
			},
			"required":             []any{"question", "answer"},
			"additionalProperties": false,
		},
	}
}

func TestValidateAcceptsConformingJSON(t *testing.T) {
	var sr schemaRegistry
	raw := json.RawMessage(`{"question":"¿2+2?","answer":"4"}`)
	if err := sr.validate(testSchema(), raw); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateNilSchemaIsNoop(t *testing.T) {
	var sr schemaRegistry
	if err := sr.validate(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema must skip validation, got %v", err)
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	var sr schemaRegistry
	err := sr.validate(testSchema(), json.RawMessage(`{"question":`))
	var target *ErrInvalidResponse
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrInvalidResponse", err)
	}
}

func TestValidateRejectsSchemaViolation(t *testing.T) {
	var sr schemaRegistry
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"question":"¿2+2?"}`},
		{"wrong type", `{"question":"¿2+2?","answer":4}`},
		{"extra property", `{"question":"q","answer":"a","extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.validate(testSchema(), json.RawMessage(tt.raw))
			var target *ErrInvalidResponse
			if !errors.As(err, &target) {
				t.Fatalf("error = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateCachesCompiledSchemas(t *testing.T) {
	var sr schemaRegistry
	raw := json.RawMessage(`{"question":"q","answer":"a"}`)
	if err := sr.validate(testSchema(), raw); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	if _, ok := sr.cache.Load("test-item"); !ok {
		t.Error("expected compiled schema in cache")
	}
	if err := sr.validate(testSchema(), raw); err != nil {
		t.Fatalf("second validate: %v", err)
	}
}
