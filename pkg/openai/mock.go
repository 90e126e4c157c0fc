package openai

import (
	"context"
	"sync"

	goopenai "github.com/sashabaranov/go-openai"
)

// MockCompleter implements ChatCompleter for testing
type MockCompleter struct {
	mu sync.Mutex

	// ChatFunc allows customizing the response
	ChatFunc func(context.Context, goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)

	// Tracking for assertions
	Calls []goopenai.ChatCompletionRequest
}

// NewMockCompleter creates a mock that answers every request with reply
func NewMockCompleter(reply string) *MockCompleter {
	return &MockCompleter{
		ChatFunc: func(context.Context, goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{
				Choices: []goopenai.ChatCompletionChoice{
					{
						Message: goopenai.ChatCompletionMessage{
							Role:    goopenai.ChatMessageRoleAssistant,
							Content: reply,
						},
						FinishReason: goopenai.FinishReasonStop,
					},
				},
			}, nil
		},
	}
}

// CreateChatCompletion implements ChatCompleter
func (m *MockCompleter) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return goopenai.ChatCompletionResponse{}, nil
}

// CallCount returns the number of requests received
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request
func (m *MockCompleter) LastCall() goopenai.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return goopenai.ChatCompletionRequest{}
	}
	return m.Calls[len(m.Calls)-1]
}
