// Package summary serves the recall path: when the user asks about earlier
// conversation, a single non-streaming completion summarizes the stored
// history in the persona's voice. The step-protocol engine is never
// involved here.
package summary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/llm"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
)

// DefaultMaxTokens bounds the summary completion.
const DefaultMaxTokens = 500

// Fixed graceful-degradation sentences. Backend failures never surface raw
// errors on this path; the persona stays in character.
const (
	emptyFallback   = "I can see our conversation history, but I'm having trouble summarizing it right now."
	failureFallback = "I can see we've been chatting, but I'm having trouble recalling the specific details right now. Could you remind me what you'd like to know?"
)

// Summarizer produces conversation summaries for recall turns.
type Summarizer struct {
	client    llm.Client
	logger    log.Logger
	maxTokens int
}

// New creates a summarizer. maxTokens falls back to DefaultMaxTokens when
// non-positive.
func New(client llm.Client, logger log.Logger, maxTokens int) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Summarizer{client: client, logger: logger, maxTokens: maxTokens}
}

// Summarize asks the model, in the persona's voice, to recount the stored
// conversation. history is the full stored conversation; the leading system
// message is excluded from what the model is shown. Always returns usable
// text — on any backend failure the fixed degradation sentence comes back
// instead of an error.
func (s *Summarizer) Summarize(ctx context.Context, p *persona.Persona, history []conversation.Message) string {
	past := history
	if len(past) > 0 && past[0].Role == conversation.RoleSystem {
		past = past[1:]
	}

	transcript, err := json.Marshal(past)
	if err != nil {
		s.logger.Error("marshaling history for summary", "error", err)
		return failureFallback
	}

	msgs := []conversation.Message{
		conversation.System(fmt.Sprintf(
			"You are %s. The user is asking about previous conversation context. Provide a helpful summary of what was discussed earlier, maintaining your unique personality and style.",
			p.Name,
		)),
		conversation.User(fmt.Sprintf(
			"Please summarize the key points from this conversation so far: %s",
			transcript,
		)),
	}

	text, err := s.client.Complete(ctx, msgs, s.maxTokens)
	if err != nil {
		s.logger.Error("context summary failed", "error", err, "persona", p.ID)
		return failureFallback
	}
	if text == "" {
		return emptyFallback
	}
	return text
}
