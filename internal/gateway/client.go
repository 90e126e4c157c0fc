// Package gateway dispatches provider-neutral chat calls to the configured
// provider adapters.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/themobileprof/llmgateway/internal/circuitbreaker"
	"github.com/themobileprof/llmgateway/internal/privacy"
	"github.com/themobileprof/llmgateway/pkg/claude"
	"github.com/themobileprof/llmgateway/pkg/llm"
	"github.com/themobileprof/llmgateway/pkg/openai"
)

// Factory builds an adapter for one provider from its API key
type Factory func(apiKey string) llm.Adapter

// Options tunes remote call handling
type Options struct {
	Timeout             time.Duration // Default: 60s
	BreakerMaxFailures  int           // 0 disables the breaker
	BreakerResetTimeout time.Duration // Default: 1m
}

// Endpoints carries per-provider overrides for the standard factories
type Endpoints struct {
	OpenAIBaseURL string
	OpenAIModel   string
	ClaudeBaseURL string
	ClaudeModel   string
}

// StandardFactories binds each supported provider to its SDK-backed adapter
func StandardFactories(ep Endpoints) map[llm.Provider]Factory {
	return map[llm.Provider]Factory{
		llm.ProviderOpenAI: func(apiKey string) llm.Adapter {
			return openai.New(openai.Config{
				APIKey:       apiKey,
				BaseURL:      ep.OpenAIBaseURL,
				DefaultModel: ep.OpenAIModel,
			})
		},
		llm.ProviderClaude: func(apiKey string) llm.Adapter {
			return claude.New(claude.Config{
				APIKey:       apiKey,
				BaseURL:      ep.ClaudeBaseURL,
				DefaultModel: ep.ClaudeModel,
			})
		},
	}
}

type route struct {
	adapter llm.Adapter
	breaker *circuitbreaker.CircuitBreaker
}

// Client is safe for concurrent use. Its routes are fixed at construction.
type Client struct {
	routes  map[llm.Provider]route
	timeout time.Duration
}

// NewClient builds an adapter for every provider that has both a factory and a
// credential. Providers without a credential fail with ErrMissingCredential.
func NewClient(creds llm.Credentials, factories map[llm.Provider]Factory, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.BreakerResetTimeout == 0 {
		opts.BreakerResetTimeout = time.Minute
	}

	routes := make(map[llm.Provider]route, len(factories))
	for _, p := range llm.Providers {
		factory, ok := factories[p]
		if !ok {
			continue
		}
		key, ok := creds.Resolve(p)
		if !ok {
			log.Printf("Provider %s disabled: no API key configured", p)
			continue
		}
		routes[p] = route{
			adapter: factory(key),
			breaker: circuitbreaker.New(p.String(), opts.BreakerMaxFailures, opts.BreakerResetTimeout),
		}
	}

	return &Client{routes: routes, timeout: opts.Timeout}
}

// Providers lists the providers that can serve calls
func (c *Client) Providers() []llm.Provider {
	out := make([]llm.Provider, 0, len(c.routes))
	for _, p := range llm.Providers {
		if _, ok := c.routes[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Chat sends conv to the named provider and returns the reply text.
//
// Calls rejected before any network attempt fail with *llm.ConfigError. Calls that
// reached the provider and produced no answer fail with *llm.TransportError, which
// matches llm.ErrNoResponse.
func (c *Client) Chat(ctx context.Context, providerID string, conv llm.Conversation, cfg llm.ProviderConfig) (string, error) {
	provider, err := llm.ParseProvider(providerID)
	if err != nil {
		return "", err
	}

	rt, ok := c.routes[provider]
	if !ok {
		return "", &llm.ConfigError{
			Provider: providerID,
			Err:      fmt.Errorf("%w for provider %s", llm.ErrMissingCredential, provider),
		}
	}

	if err := conv.Validate(); err != nil {
		return "", &llm.ConfigError{Provider: providerID, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return "", &llm.ConfigError{Provider: providerID, Err: err}
	}

	if err := rt.breaker.Allow(); err != nil {
		log.Printf("Skipping %s call: %v", provider, err)
		return "", &llm.TransportError{Provider: provider, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := rt.adapter.Complete(callCtx, conv, cfg)
	if err == nil && text == "" {
		err = llm.ErrEmptyResponse
	}

	// Adapter-side validation means nothing was sent
	if errors.Is(err, llm.ErrInvalidRequest) {
		rt.breaker.Release()
		return "", &llm.ConfigError{Provider: providerID, Err: err}
	}

	// A caller that hung up, or a request the provider refused as malformed, says
	// nothing about the provider's health
	if err != nil && (ctx.Err() != nil || errors.Is(err, llm.ErrRejected)) {
		rt.breaker.Release()
	} else {
		rt.breaker.Record(err == nil)
	}
	if err != nil {
		log.Printf("%s API error after %v: %s", provider, time.Since(start).Round(time.Millisecond), privacy.SanitizeForLogging(err.Error()))
		return "", &llm.TransportError{Provider: provider, Err: err}
	}
	return text, nil
}

// SimpleChat sends a single user prompt
func (c *Client) SimpleChat(ctx context.Context, prompt, providerID string, cfg llm.ProviderConfig) (string, error) {
	return c.Chat(ctx, providerID, llm.UserPrompt(prompt), cfg)
}
