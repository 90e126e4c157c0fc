package llm

import (
	"context"
)

// Adapter translates a conversation into one provider's wire request, performs the
// remote call and extracts the text of the reply.
type Adapter interface {
	// Complete sends a non-streaming completion request and returns the reply text
	Complete(ctx context.Context, conv Conversation, cfg ProviderConfig) (string, error)
}
