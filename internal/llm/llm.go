// Package llm is the boundary to the completion backend.
//
// The rest of the system treats the backend as a black box: given a list of
// role-tagged messages, produce text — either as an incremental token stream
// or as a single bounded completion. Client is that capability; the genkit
// implementation lives in genkit.go and tests use a scripted stand-in.
package llm

import (
	"context"

	"github.com/guruchat/guru/internal/conversation"
)

// DeltaFunc receives each text delta of a streaming completion in order.
// Returning an error aborts the stream.
type DeltaFunc func(ctx context.Context, text string) error

// Client is the completion capability guru is built against.
type Client interface {
	// Stream issues a streaming completion over msgs. onDelta is invoked
	// for every text delta; the full concatenated text is returned after
	// the stream ends. Backend failures are returned unretried.
	Stream(ctx context.Context, msgs []conversation.Message, onDelta DeltaFunc) (string, error)

	// Complete issues a single non-streaming completion over msgs, bounded
	// to at most maxTokens output tokens.
	Complete(ctx context.Context, msgs []conversation.Message, maxTokens int) (string, error)
}
