package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sabilabs/sabi/internal/store"
)

func TestResponseText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"json string", `"hola"`, "hola"},
		{"json string with escapes", `"línea uno\nlínea dos"`, "línea uno\nlínea dos"},
		{"raw object passes through", `{"a":1}`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{Content: json.RawMessage(tt.content)}
			if got := r.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMockProviderFIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"first"`)},
		MockResponse{Content: json.RawMessage(`"second"`)},
	)

	for _, want := range []string{"first", "second"} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if resp.Text() != want {
			t.Errorf("content = %q, want %q", resp.Text(), want)
		}
	}

	// Exhausted queue.
	_, err := mock.Generate(context.Background(), Request{})
	var target *ErrProviderUnavailable
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SABI_LLM_PROVIDER", "openai")
	t.Setenv("SABI_OPENAI_API_KEY", "sk-test")
	t.Setenv("SABI_OPENAI_MODEL", "gpt-4o")
	t.Setenv("SABI_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("openai config = %+v", cfg.OpenAI)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("base url = %q", cfg.OpenAI.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	// Default is gemini with no key.
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing gemini key")
	}

	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock must not need a key: %v", err)
	}

	cfg.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("friendly name = %q", got)
	}
	if got := resolveModel("gemini-9.9-experimental", geminiModels); got != "gemini-9.9-experimental" {
		t.Errorf("direct ID must pass through, got %q", got)
	}
}

type recordingRecorder struct {
	events []store.LLMRequestEventData
	fail   error
}

func (r *recordingRecorder) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if r.fail != nil {
		return r.fail
	}
	r.events = append(r.events, data)
	return nil
}

func TestLoggingRecordsRequestEvents(t *testing.T) {
	rec := &recordingRecorder{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`"ok"`),
		Usage:   Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})
	p := WithLogging("gemini", mock, rec)

	ctx := WithPurpose(context.Background(), "item-gen")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Provider != "gemini" || ev.Purpose != "item-gen" {
		t.Errorf("event = %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 10 || ev.OutputTokens != 5 {
		t.Errorf("event usage = %+v", ev)
	}
}

func TestLoggingRecordsFailures(t *testing.T) {
	rec := &recordingRecorder{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging("openai", mock, rec)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected provider error")
	}
	if len(rec.events) != 1 {
		t.Fatalf("events = %d, want 1", len(rec.events))
	}
	ev := rec.events[0]
	if ev.Success || ev.ErrorMessage == "" {
		t.Errorf("failure not recorded: %+v", ev)
	}
	if ev.Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", ev.Purpose)
	}
}

func TestLoggingFailureDoesNotFailRequest(t *testing.T) {
	rec := &recordingRecorder{fail: errors.New("db locked")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithLogging("mock", mock, rec)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("content = %q", resp.Text())
	}
}

func TestFactoryReturnsMockWithoutKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, &recordingRecorder{})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q, want mock", p.ModelID())
	}
}
