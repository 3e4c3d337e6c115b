// Package engine drives the START→THINK→EVALUATE→OUTPUT reasoning loop
// against the streaming completion backend.
//
// One call to Run is one user turn. Internally a turn may span several model
// round-trips: the engine replays every intermediate step back to the model
// as conversation context, injects a synthetic EVALUATE prompt after each
// THINK, and stops at OUTPUT, at an unknown phase, or when the step budget
// runs out. Intermediate steps never leave the turn; only the final
// sanitized content does.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/llm"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/sanitize"
)

// DefaultMaxSteps bounds the number of model round-trips per turn. The
// budget is the only protection against a model that never emits OUTPUT.
const DefaultMaxSteps = 20

// evaluateNudge is the synthetic user message appended after a THINK step.
// It drives the model into its EVALUATE phase without a second real
// evaluation call and is never shown to the user.
const evaluateNudge = `{"step":"EVALUATE","content":"Good thinking, continue with the next step."}`

// apology is returned when a turn exhausts its budget with nothing usable.
const apology = "Sorry, I encountered an issue while processing your question. Please try again."

// EventFunc receives incremental step events for progress visibility.
// step is the raw phase label as emitted by the model (known or not);
// content is the step content parsed so far.
type EventFunc func(step, content string)

// Config carries the engine's dependencies.
type Config struct {
	Client llm.Client
	Logger log.Logger

	// MaxSteps overrides DefaultMaxSteps when positive.
	MaxSteps int
}

func (cfg Config) validate() error {
	if cfg.Client == nil {
		return errors.New("completion client is required")
	}
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Engine is the step-protocol state machine. Stateless across turns; safe
// for concurrent use.
type Engine struct {
	client   llm.Client
	logger   log.Logger
	maxSteps int
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Engine{
		client:   cfg.Client,
		logger:   cfg.Logger,
		maxSteps: maxSteps,
	}, nil
}

// Run executes one user turn and returns the final sanitized answer.
//
// history is the stored conversation including the current user message at
// its end; element 0 is the stored system prompt, which is not replayed —
// a freshly composed system message (persona prompt, history reminder, and
// the verbatim question) takes its place on every turn.
//
// onStep may be nil. Backend failures are returned unretried; the caller
// decides how to surface them.
func (e *Engine) Run(ctx context.Context, personaPrompt, userMessage string, history []conversation.Message, onStep EventFunc) (string, error) {
	msgs := make([]conversation.Message, 0, len(history)+1)
	msgs = append(msgs, conversation.System(contextualPrompt(personaPrompt, userMessage, len(history) > 2)))
	if len(history) > 1 {
		msgs = append(msgs, history[1:]...)
	}

	for steps := 0; steps < e.maxSteps; {
		raw, phase, err := e.streamStep(ctx, msgs, onStep)
		if err != nil {
			return "", fmt.Errorf("step %d: %w", steps, err)
		}

		// The raw buffer always joins the turn-local context so the next
		// round-trip sees the full chain so far.
		msgs = append(msgs, conversation.Assistant(raw))

		switch phase {
		case PhaseStart, PhaseEvaluate:
			steps++
		case PhaseThink:
			msgs = append(msgs, conversation.User(evaluateNudge))
			steps++
		case PhaseOutput:
			return sanitize.Clean(extractContent(raw)), nil
		default:
			// Unknown phase or plain text: treat the buffer as the final
			// answer so the loop always produces something.
			e.logger.Debug("non-protocol output treated as final", "len", len(raw))
			return sanitize.Clean(extractContent(raw)), nil
		}
	}

	e.logger.Warn("step budget exhausted without OUTPUT", "max_steps", e.maxSteps)
	return sanitize.Clean(e.fallback(msgs)), nil
}

// streamStep issues one streaming round-trip, accumulating deltas and
// re-attempting a strict parse after each one. Parse failures are the
// expected state mid-stream and are absorbed silently. The phase reported
// is the one parsed from the buffer once the stream has ended; premature
// parse successes only feed progress events, never transitions.
func (e *Engine) streamStep(ctx context.Context, msgs []conversation.Message, onStep EventFunc) (string, Phase, error) {
	var buf strings.Builder
	label := ""

	_, err := e.client.Stream(ctx, msgs, func(_ context.Context, delta string) error {
		buf.WriteString(delta)
		if st, ok := ParseStep(buf.String()); ok && st.Step != "" {
			label = st.Step
			if onStep != nil {
				onStep(st.Step, st.Content)
			}
		}
		return nil
	})
	if err != nil {
		return "", PhaseUnknown, err
	}

	return buf.String(), ParsePhase(label), nil
}

// fallback extracts best-effort content after budget exhaustion: the last
// appended assistant message if any, else a fixed apology. Note the last
// message can be the synthetic EVALUATE nudge, which is not usable output.
func (e *Engine) fallback(msgs []conversation.Message) string {
	if len(msgs) > 0 {
		if last := msgs[len(msgs)-1]; last.Role == conversation.RoleAssistant {
			if content := extractContent(last.Content); strings.TrimSpace(content) != "" {
				return content
			}
		}
	}
	return apology
}

// contextualPrompt composes the per-turn system message: the persona prompt
// plus an explicit reminder block stating whether history exists and the
// verbatim current question.
func contextualPrompt(personaPrompt, userMessage string, hasHistory bool) string {
	contextLine := "This is a new conversation."
	if hasHistory {
		contextLine = "You have previous messages in this conversation. Use them to provide better, more contextual answers."
	}

	var b strings.Builder
	b.WriteString(personaPrompt)
	b.WriteString("\n\n**IMPORTANT: You have access to conversation history. Use it to provide context-aware responses.**\n\n")
	b.WriteString("**Conversation Context:**\n")
	b.WriteString(contextLine)
	b.WriteString("\n\n**Current User Question:** ")
	b.WriteString(userMessage)
	b.WriteString("\n\n**Instructions:**\n")
	b.WriteString("- If the user asks about previous questions/answers, reference the conversation history\n")
	b.WriteString("- If this is a follow-up question, build upon previous context\n")
	b.WriteString("- Always maintain your unique personality and style\n")
	b.WriteString("- Provide helpful, contextual responses")
	return b.String()
}
