// Package claude adapts conversations to the Anthropic messages API.
//
// The messages API takes the system instruction as a top-level field rather than
// as a turn, so the adapter splits it out of the conversation before sending.
package claude

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/themobileprof/llmgateway/pkg/llm"
)

const (
	DefaultModel = "claude-sonnet-4-20250514"

	// DefaultSystemPrompt is sent when the conversation carries no system message
	DefaultSystemPrompt = "You are a helpful assistant."

	// MaxTemperature is the upper bound the messages API accepts
	MaxTemperature = 1.0
)

// MessageCreator is the subset of *anthropic.MessageService the adapter needs.
type MessageCreator interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Config holds configuration for the Claude adapter
type Config struct {
	APIKey       string
	BaseURL      string // Default: the SDK's https://api.anthropic.com
	DefaultModel string // Default: claude-sonnet-4-20250514
}

// Adapter implements llm.Adapter for the Anthropic messages API
type Adapter struct {
	api   MessageCreator
	model string
}

// Ensure Adapter implements llm.Adapter
var _ llm.Adapter = (*Adapter)(nil)

// New creates an adapter backed by the Anthropic SDK. SDK retries are disabled.
func New(config Config) *Adapter {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	c := anthropic.NewClient(opts...)
	return NewWithClient(&c.Messages, config.DefaultModel)
}

// NewWithClient wraps an existing message service, mainly for tests.
func NewWithClient(api MessageCreator, defaultModel string) *Adapter {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	return &Adapter{api: api, model: defaultModel}
}

// SplitSystem separates the system instruction from the turns. The first system
// message becomes the instruction; a second one is rejected because the API has
// no place for it.
func SplitSystem(conv llm.Conversation) (string, llm.Conversation, error) {
	system := ""
	found := false
	turns := make(llm.Conversation, 0, len(conv))

	for i, m := range conv {
		if m.Role != llm.RoleSystem {
			turns = append(turns, m)
			continue
		}
		if found {
			return "", nil, fmt.Errorf("%w: claude accepts one system message, found another at index %d", llm.ErrInvalidRequest, i)
		}
		system = m.Content
		found = true
	}

	if len(turns) == 0 {
		return "", nil, fmt.Errorf("%w: conversation has no user or assistant turns", llm.ErrInvalidRequest)
	}
	if !found {
		system = DefaultSystemPrompt
	}
	return system, turns, nil
}

// Translate builds the wire request.
func (a *Adapter) Translate(conv llm.Conversation, cfg llm.ProviderConfig) (anthropic.MessageNewParams, error) {
	if cfg.Temperature != nil && *cfg.Temperature > MaxTemperature {
		return anthropic.MessageNewParams{}, fmt.Errorf("%w: claude temperature %.2f outside [0, %.0f]", llm.ErrInvalidRequest, *cfg.Temperature, MaxTemperature)
	}

	system, turns, err := SplitSystem(conv)
	if err != nil {
		return anthropic.MessageNewParams{}, err
	}

	messages := make([]anthropic.MessageParam, len(turns))
	for i, m := range turns {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == llm.RoleAssistant {
			messages[i] = anthropic.NewAssistantMessage(block)
		} else {
			messages[i] = anthropic.NewUserMessage(block)
		}
	}

	model := cfg.Model
	if model == "" {
		model = a.model
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(cfg.MaxTokensOrDefault()),
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages:  messages,
	}
	if cfg.Temperature != nil {
		params.Temperature = anthropic.Float(*cfg.Temperature)
	}
	return params, nil
}

// Extract returns the text of the first content block
func Extract(msg *anthropic.Message) (string, error) {
	if msg == nil || len(msg.Content) == 0 {
		return "", fmt.Errorf("claude: %w: no content blocks", llm.ErrEmptyResponse)
	}
	return msg.Content[0].Text, nil
}

// Complete implements llm.Adapter
func (a *Adapter) Complete(ctx context.Context, conv llm.Conversation, cfg llm.ProviderConfig) (string, error) {
	params, err := a.Translate(conv, cfg)
	if err != nil {
		return "", err
	}

	msg, err := a.api.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && llm.RejectedStatus(apiErr.StatusCode) {
			return "", fmt.Errorf("claude: create message: %w: %w", llm.ErrRejected, err)
		}
		return "", fmt.Errorf("claude: create message: %w", err)
	}
	return Extract(msg)
}
