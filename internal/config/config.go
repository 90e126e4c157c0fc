// Package config reads process configuration from the environment, loading a
// .env file first when one exists.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/themobileprof/llmgateway/internal/gateway"
	"github.com/themobileprof/llmgateway/pkg/llm"
)

// Config holds all configuration values
type Config struct {
	Port    string
	GinMode string

	OpenAIAPIKey    string
	AnthropicAPIKey string

	OpenAIBaseURL string
	OpenAIModel   string
	ClaudeBaseURL string
	ClaudeModel   string

	Timeout             time.Duration
	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration
}

// Load reads the .env file (if present) and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	timeout, err := time.ParseDuration(get("LLM_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %s is negative", timeout)
	}
	resetTimeout, err := time.ParseDuration(get("BREAKER_RESET_TIMEOUT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_RESET_TIMEOUT: %w", err)
	}
	if resetTimeout < 0 {
		return nil, fmt.Errorf("invalid BREAKER_RESET_TIMEOUT: %s is negative", resetTimeout)
	}
	maxFailures, err := strconv.Atoi(get("BREAKER_MAX_FAILURES", "5"))
	if err != nil || maxFailures < 0 {
		return nil, fmt.Errorf("invalid BREAKER_MAX_FAILURES: %q", getenv("BREAKER_MAX_FAILURES"))
	}

	return &Config{
		Port:                get("PORT", "8000"),
		GinMode:             get("GIN_MODE", "release"),
		OpenAIAPIKey:        getenv("OPENAI_API_KEY"),
		AnthropicAPIKey:     getenv("ANTHROPIC_API_KEY"),
		OpenAIBaseURL:       getenv("OPENAI_BASE_URL"),
		OpenAIModel:         getenv("OPENAI_MODEL"),
		ClaudeBaseURL:       getenv("ANTHROPIC_BASE_URL"),
		ClaudeModel:         getenv("CLAUDE_MODEL"),
		Timeout:             timeout,
		BreakerMaxFailures:  maxFailures,
		BreakerResetTimeout: resetTimeout,
	}, nil
}

// Credentials returns the API keys as a credential store
func (c *Config) Credentials() llm.Credentials {
	return llm.NewCredentials(map[llm.Provider]string{
		llm.ProviderOpenAI: c.OpenAIAPIKey,
		llm.ProviderClaude: c.AnthropicAPIKey,
	})
}

// NewGatewayClient wires the configured providers into a gateway client
func (c *Config) NewGatewayClient() *gateway.Client {
	factories := gateway.StandardFactories(gateway.Endpoints{
		OpenAIBaseURL: c.OpenAIBaseURL,
		OpenAIModel:   c.OpenAIModel,
		ClaudeBaseURL: c.ClaudeBaseURL,
		ClaudeModel:   c.ClaudeModel,
	})
	return gateway.NewClient(c.Credentials(), factories, gateway.Options{
		Timeout:             c.Timeout,
		BreakerMaxFailures:  c.BreakerMaxFailures,
		BreakerResetTimeout: c.BreakerResetTimeout,
	})
}
