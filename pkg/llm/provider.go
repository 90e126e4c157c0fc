package llm

import (
	"fmt"
	"strings"
)

// Provider is one of the supported upstream LLM vendors
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
)

// Providers lists every supported provider in a stable order
var Providers = []Provider{ProviderOpenAI, ProviderClaude}

func (p Provider) String() string {
	return string(p)
}

// ParseProvider matches an identifier against the supported providers, ignoring case
// and surrounding whitespace.
func ParseProvider(id string) (Provider, error) {
	normalized := Provider(strings.ToLower(strings.TrimSpace(id)))
	for _, p := range Providers {
		if p == normalized {
			return p, nil
		}
	}
	return "", &ConfigError{Provider: id, Err: fmt.Errorf("%w: %s", ErrUnsupportedProvider, id)}
}
