package claude

import (
	"context"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// MockMessages implements MessageCreator for testing
type MockMessages struct {
	mu sync.Mutex

	// NewFunc allows customizing the response
	NewFunc func(context.Context, anthropic.MessageNewParams) (*anthropic.Message, error)

	// Tracking for assertions
	Calls []anthropic.MessageNewParams
}

// NewMockMessages creates a mock that answers every request with reply
func NewMockMessages(reply string) *MockMessages {
	return &MockMessages{
		NewFunc: func(context.Context, anthropic.MessageNewParams) (*anthropic.Message, error) {
			return &anthropic.Message{
				ID:   "msg_mock",
				Role: "assistant",
				Content: []anthropic.ContentBlockUnion{
					{Type: "text", Text: reply},
				},
			}, nil
		},
	}
}

// New implements MessageCreator
func (m *MockMessages) New(ctx context.Context, body anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, body)
	m.mu.Unlock()

	if m.NewFunc != nil {
		return m.NewFunc(ctx, body)
	}
	return &anthropic.Message{}, nil
}

// CallCount returns the number of requests received
func (m *MockMessages) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request
func (m *MockMessages) LastCall() anthropic.MessageNewParams {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return anthropic.MessageNewParams{}
	}
	return m.Calls[len(m.Calls)-1]
}
