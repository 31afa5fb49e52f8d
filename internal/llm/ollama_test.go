package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaRequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	if _, err := provider.Generate(context.Background(), "prompt", 0.3); err == nil {
		t.Error("expected error without a model name")
	}
}

func TestOllamaGenerate(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		fmt.Fprint(w, `{"model": "llama3.1:8b", "response": "  generated text  ", "done": true}`)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1:8b"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	got, err := provider.Generate(context.Background(), "prompt text", 0.2)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if got != "generated text" {
		t.Errorf("output = %q, want trimmed response", got)
	}
	if gotReq.Stream {
		t.Error("request must disable streaming")
	}
	if gotReq.Prompt != "prompt text" || gotReq.Model != "llama3.1:8b" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestOllamaGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "model not found"}`)
	}))
	defer server.Close()

	provider, _ := NewOllamaProvider(Config{BaseURL: server.URL, Model: "missing"})

	_, err := provider.Generate(context.Background(), "prompt", 0.3)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error = %v, want API message surfaced", err)
	}
}

func TestOllamaDefaultBaseURL(t *testing.T) {
	provider, err := NewOllamaProvider(Config{})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if provider.baseURL != "http://localhost:11434" {
		t.Errorf("base URL = %q", provider.baseURL)
	}
}
