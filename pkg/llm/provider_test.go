package llm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		id      string
		want    Provider
		wantErr bool
	}{
		{"openai", ProviderOpenAI, false},
		{"OpenAI", ProviderOpenAI, false},
		{" CLAUDE ", ProviderClaude, false},
		{"claude", ProviderClaude, false},
		{"not-a-real-provider", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseProvider(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedProvider) {
					t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
				}
				if !IsConfigError(err) {
					t.Errorf("expected a ConfigError, got %T", err)
				}
				if !strings.Contains(err.Error(), tt.id) {
					t.Errorf("error %q does not name the provider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProvider(%q) error = %v", tt.id, err)
			}
			if got != tt.want {
				t.Errorf("ParseProvider(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestCredentials(t *testing.T) {
	keys := map[Provider]string{
		ProviderOpenAI: "sk-test",
		ProviderClaude: "",
	}
	creds := NewCredentials(keys)

	// Later changes to the source map must not leak in
	keys[ProviderClaude] = "late"

	if key, ok := creds.Resolve(ProviderOpenAI); !ok || key != "sk-test" {
		t.Errorf("Resolve(openai) = %q, %v", key, ok)
	}
	if _, ok := creds.Resolve(ProviderClaude); ok {
		t.Error("empty key should resolve as absent")
	}
}

func TestErrorClassification(t *testing.T) {
	transport := &TransportError{Provider: ProviderOpenAI, Err: errors.New("connection reset")}
	if !errors.Is(transport, ErrNoResponse) {
		t.Error("TransportError should match ErrNoResponse")
	}
	if IsConfigError(transport) {
		t.Error("TransportError classified as ConfigError")
	}

	cfgErr := &ConfigError{Provider: "claude", Err: ErrMissingCredential}
	if errors.Is(cfgErr, ErrNoResponse) {
		t.Error("ConfigError should not match ErrNoResponse")
	}
	if !errors.Is(cfgErr, ErrMissingCredential) {
		t.Error("ConfigError should unwrap to its cause")
	}
}

func TestRejectedStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{200, false},
		{400, true},
		{401, true},
		{404, true},
		{429, false},
		{500, false},
		{529, false},
	}

	for _, tt := range tests {
		if got := RejectedStatus(tt.code); got != tt.want {
			t.Errorf("RejectedStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
