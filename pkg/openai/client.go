// Package openai adapts conversations to the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"math"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/themobileprof/llmgateway/pkg/llm"
)

const DefaultModel = "gpt-4o-mini"

// ChatCompleter is the subset of *goopenai.Client the adapter needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Config holds configuration for the OpenAI adapter
type Config struct {
	APIKey       string
	BaseURL      string // Default: the SDK's https://api.openai.com/v1
	DefaultModel string // Default: gpt-4o-mini
}

// Adapter implements llm.Adapter for OpenAI-style providers
type Adapter struct {
	api   ChatCompleter
	model string
}

// Ensure Adapter implements llm.Adapter
var _ llm.Adapter = (*Adapter)(nil)

// New creates an adapter backed by the go-openai SDK
func New(config Config) *Adapter {
	sdkConfig := goopenai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		sdkConfig.BaseURL = config.BaseURL
	}
	return NewWithClient(goopenai.NewClientWithConfig(sdkConfig), config.DefaultModel)
}

// NewWithClient wraps an existing completer, mainly for tests.
func NewWithClient(api ChatCompleter, defaultModel string) *Adapter {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &Adapter{api: api, model: defaultModel}
}

// Translate builds the wire request. Messages pass through unchanged and in order,
// since this API accepts interleaved system, user and assistant turns.
func (a *Adapter) Translate(conv llm.Conversation, cfg llm.ProviderConfig) goopenai.ChatCompletionRequest {
	messages := make([]goopenai.ChatCompletionMessage, len(conv))
	for i, m := range conv {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	model := cfg.Model
	if model == "" {
		model = a.model
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: wireTemperature(cfg.TemperatureOrDefault()),
	}
	if cfg.MaxTokens > 0 {
		req.MaxTokens = cfg.MaxTokens
	}
	return req
}

// The SDK omits a zero temperature from the JSON body, which makes the API fall
// back to its own default of 1.0.
func wireTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// Extract returns the content of the first choice
func Extract(resp goopenai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: no choices", llm.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Complete implements llm.Adapter
func (a *Adapter) Complete(ctx context.Context, conv llm.Conversation, cfg llm.ProviderConfig) (string, error) {
	resp, err := a.api.CreateChatCompletion(ctx, a.Translate(conv, cfg))
	if err != nil {
		if rejectedByProvider(err) {
			return "", fmt.Errorf("openai: chat completion: %w: %w", llm.ErrRejected, err)
		}
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	return Extract(resp)
}

// rejectedByProvider reports whether err is a 4xx reply blaming the request. The
// SDK returns *APIError for JSON error bodies and *RequestError otherwise.
func rejectedByProvider(err error) bool {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return llm.RejectedStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return llm.RejectedStatus(reqErr.HTTPStatusCode)
	}
	return false
}
