package llm

import (
	"fmt"
)

// Role identifies who authored a message in a conversation
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message represents a message in the conversation
type Message struct {
	Role    Role   `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// Conversation is the ordered dialogue history sent to a provider.
type Conversation []Message

// UserPrompt builds a single-turn conversation from a prompt.
func UserPrompt(prompt string) Conversation {
	return Conversation{{Role: RoleUser, Content: prompt}}
}

// Validate checks the conversation is non-empty and every role is known.
func (c Conversation) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: conversation has no messages", ErrInvalidRequest)
	}
	for i, m := range c {
		if !m.Role.Valid() {
			return fmt.Errorf("%w: message %d has unknown role %q", ErrInvalidRequest, i, m.Role)
		}
	}
	return nil
}

const (
	// DefaultTemperature applies when a call does not set one.
	DefaultTemperature = 0.7

	// DefaultMaxTokens applies to providers that require an explicit output cap.
	DefaultMaxTokens = 1024

	MaxTemperature = 2.0
)

// ProviderConfig holds per-call overrides. Zero values mean "use the adapter default".
type ProviderConfig struct {
	Model       string
	Temperature *float64 // nil means DefaultTemperature; 0 is a valid setting
	MaxTokens   int
}

// Float returns a pointer to v, for setting ProviderConfig.Temperature.
func Float(v float64) *float64 {
	return &v
}

// TemperatureOrDefault resolves the effective sampling temperature.
func (c ProviderConfig) TemperatureOrDefault() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// MaxTokensOrDefault resolves the output cap for providers that require one.
func (c ProviderConfig) MaxTokensOrDefault() int {
	if c.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return c.MaxTokens
}

// Validate rejects out-of-range overrides.
func (c ProviderConfig) Validate() error {
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > MaxTemperature) {
		return fmt.Errorf("%w: temperature %.2f outside [0, %.0f]", ErrInvalidRequest, *c.Temperature, MaxTemperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("%w: max_tokens must not be negative", ErrInvalidRequest)
	}
	return nil
}
