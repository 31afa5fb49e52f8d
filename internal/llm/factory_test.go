package llm

import "testing"

func TestNewProviderEmptyIsNil(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if provider != nil {
		t.Errorf("provider = %v, want nil for rule-based only", provider)
	}
}

func TestNewProviderNames(t *testing.T) {
	tests := []struct {
		configured string
		wantName   string
	}{
		{"gemini", "gemini"},
		{"google", "gemini"},
		{"GEMINI", "gemini"},
		{"openai", "openai"},
		{"ollama", "ollama"},
	}

	for _, tt := range tests {
		provider, err := NewProvider(Config{Provider: tt.configured, APIKey: "k"})
		if err != nil {
			t.Errorf("NewProvider(%q): %v", tt.configured, err)
			continue
		}
		if provider.Name() != tt.wantName {
			t.Errorf("NewProvider(%q).Name() = %q, want %q", tt.configured, provider.Name(), tt.wantName)
		}
	}
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "watson"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewProviderMissingKey(t *testing.T) {
	for _, name := range []string{"gemini", "openai"} {
		if _, err := NewProvider(Config{Provider: name}); err == nil {
			t.Errorf("expected error for %s without API key", name)
		}
	}
}
