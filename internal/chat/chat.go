// Package chat orchestrates a single conversation turn: persona resolution,
// history management, recall detection, and dispatch to either the
// step-protocol engine or the context summarizer.
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/engine"
	"github.com/guruchat/guru/internal/intent"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
	"github.com/guruchat/guru/internal/summary"
)

// ErrPersonaNotFound reports an unknown persona id in a request.
var ErrPersonaNotFound = errors.New("persona not found")

// Request is one incoming chat turn.
type Request struct {
	Message        string
	PersonaID      string
	ConversationID string
}

// Service coordinates the chat components for the API layer.
type Service struct {
	catalog    *persona.Catalog
	store      *conversation.Store
	engine     *engine.Engine
	summarizer *summary.Summarizer
	logger     log.Logger
}

// Config collects the Service dependencies.
type Config struct {
	Catalog    *persona.Catalog
	Store      *conversation.Store
	Engine     *engine.Engine
	Summarizer *summary.Summarizer
	Logger     log.Logger
}

func (c Config) validate() error {
	switch {
	case c.Catalog == nil:
		return errors.New("chat: catalog is required")
	case c.Store == nil:
		return errors.New("chat: store is required")
	case c.Engine == nil:
		return errors.New("chat: engine is required")
	case c.Summarizer == nil:
		return errors.New("chat: summarizer is required")
	}
	return nil
}

// New creates a chat service.
func New(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	return &Service{
		catalog:    cfg.Catalog,
		store:      cfg.Store,
		engine:     cfg.Engine,
		summarizer: cfg.Summarizer,
		logger:     cfg.Logger,
	}, nil
}

// Turn is a prepared chat turn, ready to run. Recall tells the caller which
// transport to use before any model call happens: recall turns produce a
// single JSON response, everything else streams.
type Turn struct {
	Persona        *persona.Persona
	ConversationID string
	Recall         bool

	svc     *Service
	message string
	history []conversation.Message
}

// Prepare resolves the persona, assigns a conversation id when the request
// carries none, seeds and persists the history through the user message, and
// classifies the turn. Returns ErrPersonaNotFound for unknown persona ids.
func (s *Service) Prepare(req Request) (*Turn, error) {
	p, err := s.catalog.Lookup(req.PersonaID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPersonaNotFound, req.PersonaID)
	}

	convID := req.ConversationID
	if convID == "" {
		convID = conversation.NewID()
	}

	history := s.store.Get(convID)
	if len(history) == 0 {
		history = append(history, conversation.System(persona.RenderPrompt(p)))
	}
	history = append(history, conversation.User(req.Message))

	// Persist before the model call so the user turn survives a failed run.
	s.store.Replace(convID, history)

	recall := intent.IsRecall(req.Message) && len(history) > 2
	s.logger.Debug("turn prepared",
		"persona", p.ID,
		"conversation_id", convID,
		"recall", recall,
		"history_len", len(history),
	)

	return &Turn{
		Persona:        p,
		ConversationID: convID,
		Recall:         recall,
		svc:            s,
		message:        req.Message,
		history:        history,
	}, nil
}

// Run executes the step protocol for this turn, forwarding intermediate step
// events to onStep, and persists the assistant reply on success.
func (t *Turn) Run(ctx context.Context, onStep engine.EventFunc) (string, error) {
	reply, err := t.svc.engine.Run(ctx, persona.RenderPrompt(t.Persona), t.message, t.history, onStep)
	if err != nil {
		return "", err
	}
	t.svc.store.Append(t.ConversationID, conversation.Assistant(reply))
	return reply, nil
}

// Summarize handles a recall turn with a single completion and persists the
// summary as the assistant reply. Degraded summaries come back as plain
// text, never as errors.
func (t *Turn) Summarize(ctx context.Context) string {
	text := t.svc.summarizer.Summarize(ctx, t.Persona, t.history)
	t.svc.store.Append(t.ConversationID, conversation.Assistant(text))
	return text
}
