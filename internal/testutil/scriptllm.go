// Package testutil provides shared test helpers: a scripted completion
// client and an SSE stream parser.
package testutil

import (
	"context"
	"sync"

	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/llm"
)

// ScriptLLM is a deterministic llm.Client for tests. Streaming responses are
// played back from a fixed script, one response per call, delivered in small
// chunks to exercise incremental parsing. Non-streaming completions come
// from a separate script.
//
// Thread-safe for concurrent use.
type ScriptLLM struct {
	mu sync.Mutex

	streamScript   []string
	completeScript []string
	streamCalls    [][]conversation.Message
	completeCalls  [][]conversation.Message

	// Err, when set, is returned by every call. Simulates backend failure.
	Err error

	// ChunkSize controls stream delta granularity. Default 7 bytes, small
	// enough that step objects arrive split across many deltas.
	ChunkSize int
}

// NewScriptLLM creates a scripted client whose Stream calls return the given
// responses in order. When the script runs out, the last entry repeats —
// convenient for "model never progresses" budget tests.
func NewScriptLLM(streamResponses ...string) *ScriptLLM {
	return &ScriptLLM{streamScript: streamResponses}
}

// AddCompletion queues a response for non-streaming Complete calls.
func (s *ScriptLLM) AddCompletion(response string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeScript = append(s.completeScript, response)
}

// StreamCalls returns the message lists passed to Stream, in call order.
func (s *ScriptLLM) StreamCalls() [][]conversation.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]conversation.Message, len(s.streamCalls))
	copy(out, s.streamCalls)
	return out
}

// CompleteCalls returns the message lists passed to Complete, in call order.
func (s *ScriptLLM) CompleteCalls() [][]conversation.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]conversation.Message, len(s.completeCalls))
	copy(out, s.completeCalls)
	return out
}

// Stream implements llm.Client.
func (s *ScriptLLM) Stream(ctx context.Context, msgs []conversation.Message, onDelta llm.DeltaFunc) (string, error) {
	s.mu.Lock()
	s.streamCalls = append(s.streamCalls, snapshot(msgs))
	if s.Err != nil {
		err := s.Err
		s.mu.Unlock()
		return "", err
	}

	idx := len(s.streamCalls) - 1
	if idx >= len(s.streamScript) {
		idx = len(s.streamScript) - 1
	}
	response := ""
	if idx >= 0 {
		response = s.streamScript[idx]
	}
	chunk := s.ChunkSize
	s.mu.Unlock()

	if chunk <= 0 {
		chunk = 7
	}
	for i := 0; i < len(response); i += chunk {
		end := min(i+chunk, len(response))
		if err := onDelta(ctx, response[i:end]); err != nil {
			return "", err
		}
	}
	return response, nil
}

// Complete implements llm.Client.
func (s *ScriptLLM) Complete(_ context.Context, msgs []conversation.Message, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completeCalls = append(s.completeCalls, snapshot(msgs))
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.completeScript) == 0 {
		return "", nil
	}
	response := s.completeScript[0]
	s.completeScript = s.completeScript[1:]
	return response, nil
}

func snapshot(msgs []conversation.Message) []conversation.Message {
	cp := make([]conversation.Message, len(msgs))
	copy(cp, msgs)
	return cp
}
