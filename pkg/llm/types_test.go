package llm

import (
	"errors"
	"testing"
)

func TestConversationValidate(t *testing.T) {
	tests := []struct {
		name    string
		conv    Conversation
		wantErr bool
	}{
		{
			name:    "empty conversation",
			conv:    Conversation{},
			wantErr: true,
		},
		{
			name: "unknown role",
			conv: Conversation{
				{Role: "tool", Content: "x"},
			},
			wantErr: true,
		},
		{
			name: "full dialogue",
			conv: Conversation{
				{Role: RoleSystem, Content: "S"},
				{Role: RoleUser, Content: "U1"},
				{Role: RoleAssistant, Content: "A1"},
				{Role: RoleUser, Content: "U2"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conv.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestUserPrompt(t *testing.T) {
	conv := UserPrompt("hello")
	if len(conv) != 1 {
		t.Fatalf("expected 1 message, got %d", len(conv))
	}
	if conv[0].Role != RoleUser || conv[0].Content != "hello" {
		t.Errorf("unexpected message %+v", conv[0])
	}
}

func TestProviderConfigDefaults(t *testing.T) {
	var cfg ProviderConfig
	if got := cfg.TemperatureOrDefault(); got != DefaultTemperature {
		t.Errorf("TemperatureOrDefault() = %v, want %v", got, DefaultTemperature)
	}
	if got := cfg.MaxTokensOrDefault(); got != DefaultMaxTokens {
		t.Errorf("MaxTokensOrDefault() = %v, want %v", got, DefaultMaxTokens)
	}

	cfg = ProviderConfig{Temperature: Float(0), MaxTokens: 256}
	if got := cfg.TemperatureOrDefault(); got != 0 {
		t.Errorf("explicit zero temperature replaced with %v", got)
	}
	if got := cfg.MaxTokensOrDefault(); got != 256 {
		t.Errorf("MaxTokensOrDefault() = %v, want 256", got)
	}
}

func TestProviderConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr bool
	}{
		{"zero value", ProviderConfig{}, false},
		{"zero temperature", ProviderConfig{Temperature: Float(0)}, false},
		{"max temperature", ProviderConfig{Temperature: Float(2)}, false},
		{"negative temperature", ProviderConfig{Temperature: Float(-0.1)}, true},
		{"temperature too high", ProviderConfig{Temperature: Float(2.5)}, true},
		{"negative max tokens", ProviderConfig{MaxTokens: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
