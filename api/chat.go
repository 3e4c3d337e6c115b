package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/guruchat/guru/internal/chat"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
)

// ChatHandler handles the chat endpoint.
//
// POST /api/chat runs one conversation turn. Normal turns stream progress as
// Server-Sent Events; recall turns (questions about earlier conversation)
// return a single JSON body instead, since there is nothing incremental to
// show for a one-shot summary.
type ChatHandler struct {
	svc    *chat.Service
	logger log.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *chat.Service, logger log.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers chat routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/chat", h.handleChat)
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Message        string `json:"message"`
	PersonaID      string `json:"personaId"`
	ConversationID string `json:"conversationId,omitempty"`
}

// ChatResponse is the JSON response body for recall turns.
type ChatResponse struct {
	Response       string      `json:"response"`
	Persona        persona.Ref `json:"persona"`
	ConversationID string      `json:"conversationId"`
}

// SSE event payloads. Every frame is a data-only event carrying one of these
// three shapes; the stream always ends with "complete" or "error".
type (
	// StepEvent reports one protocol step as the model works.
	StepEvent struct {
		Type    string `json:"type"` // "step"
		Step    string `json:"step"`
		Content string `json:"content"`
	}

	// CompleteEvent carries the final answer.
	CompleteEvent struct {
		Type           string      `json:"type"` // "complete"
		Response       string      `json:"response"`
		Persona        persona.Ref `json:"persona"`
		ConversationID string      `json:"conversationId"`
	}

	// ErrorEvent reports a failed turn.
	ErrorEvent struct {
		Type  string `json:"type"` // "error"
		Error string `json:"error"`
	}
)

func (h *ChatHandler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Message and personaId are required", "")
		return
	}
	if req.Message == "" || req.PersonaID == "" {
		writeError(w, http.StatusBadRequest, "Message and personaId are required", "")
		return
	}

	turn, err := h.svc.Prepare(chat.Request{
		Message:        req.Message,
		PersonaID:      req.PersonaID,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		if errors.Is(err, chat.ErrPersonaNotFound) {
			writeError(w, http.StatusInternalServerError, "Invalid persona ID", "")
			return
		}
		h.logger.Error("preparing chat turn failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Invalid persona ID", "")
		return
	}

	if turn.Recall {
		h.handleRecall(w, r, turn)
		return
	}
	h.handleStream(w, r, turn)
}

// handleRecall answers a recall turn with a single JSON body.
func (h *ChatHandler) handleRecall(w http.ResponseWriter, r *http.Request, turn *chat.Turn) {
	text := turn.Summarize(r.Context())
	writeJSON(w, http.StatusOK, ChatResponse{
		Response:       text,
		Persona:        turn.Persona.Ref(),
		ConversationID: turn.ConversationID,
	})
}

// handleStream runs the step protocol and streams progress as SSE.
func (h *ChatHandler) handleStream(w http.ResponseWriter, r *http.Request, turn *chat.Turn) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	h.logger.Info("chat stream started",
		"persona", turn.Persona.ID,
		"conversation_id", turn.ConversationID,
		"request_id", RequestID(ctx))

	steps := 0
	reply, err := turn.Run(ctx, func(step, content string) {
		steps++
		h.writeEvent(w, flusher, StepEvent{Type: "step", Step: step, Content: content})
	})
	if err != nil {
		h.logger.Error("chat turn failed",
			"error", err,
			"conversation_id", turn.ConversationID)
		h.writeEvent(w, flusher, ErrorEvent{Type: "error", Error: "An error occurred while processing your request"})
		return
	}

	h.writeEvent(w, flusher, CompleteEvent{
		Type:           "complete",
		Response:       reply,
		Persona:        turn.Persona.Ref(),
		ConversationID: turn.ConversationID,
	})
	h.logger.Info("chat stream completed",
		"conversation_id", turn.ConversationID,
		"steps", steps,
		"response_len", len(reply))
}

// writeEvent writes one data-only SSE frame and flushes it.
func (h *ChatHandler) writeEvent(w http.ResponseWriter, flusher http.Flusher, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshaling SSE event", "error", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
