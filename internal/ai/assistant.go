package ai

import (
	"context"
)

// Conversation is one chat with the completion service. The handle carries
// the accumulated history of the session, so each SendMessage sees every
// prior exchange. A failed call surfaces as a single error the caller must
// degrade from; no retry is performed at this layer.
type Conversation interface {
	SendMessage(ctx context.Context, prompt string) (string, error)
}

// Assistant creates conversations against a configured provider.
type Assistant interface {
	StartConversation(ctx context.Context) (Conversation, error)
	Model() string
}
