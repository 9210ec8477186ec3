package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infraAI "github.com/testplanhq/testplan/internal/infrastructure/ai"
	"github.com/testplanhq/testplan/pkg/domain/ai"
)

func TestOllamaProvider_Basic(t *testing.T) {
	p := infraAI.NewOllamaProvider("")
	if p.ID() != "ollama:llama3" {
		t.Errorf("expected ID ollama:llama3, got %s", p.ID())
	}
}

func TestOllamaProvider_Validation(t *testing.T) {
	p := infraAI.NewOllamaProvider("invalid model;")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Error("expected error for invalid model name")
	}
}

func TestOllamaProvider_NegativeTemperature(t *testing.T) {
	p := infraAI.NewOllamaProvider("llama3")
	_, err := p.Complete(context.Background(), ai.CompletionRequest{Temperature: -1})
	if err == nil {
		t.Error("expected error for negative temperature")
	}
}

func TestOllamaProvider_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := infraAI.NewOllamaProvider("llama3")
	_, err := p.Complete(ctx, ai.CompletionRequest{Prompt: "hi"})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestOllamaProvider_Complete_Success(t *testing.T) {
	var receivedBody struct {
		Model  string `json:"model"`
		Format string `json:"format"`
		Stream bool   `json:"stream"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&receivedBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": "  [] \n",
			"done":     true,
		})
	}))
	defer server.Close()

	p := infraAI.NewOllamaProviderWithURL("llama3", server.URL)
	resp, err := p.Complete(context.Background(), ai.CompletionRequest{
		Prompt: "Return a JSON array",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Text != "[]" {
		t.Errorf("expected trimmed response, got %q", resp.Text)
	}
	if receivedBody.Format != "json" {
		t.Errorf("expected json format for JSON prompt, got %q", receivedBody.Format)
	}
	if receivedBody.Stream {
		t.Error("expected streaming disabled")
	}
}
