package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/guruchat/guru/internal/chat"
	"github.com/guruchat/guru/internal/conversation"
	"github.com/guruchat/guru/internal/engine"
	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
	"github.com/guruchat/guru/internal/summary"
	"github.com/guruchat/guru/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, llm *testutil.ScriptLLM) *Server {
	t.Helper()
	eng, err := engine.New(engine.Config{Client: llm, Logger: log.NewNop()})
	require.NoError(t, err)
	svc, err := chat.New(chat.Config{
		Catalog:    persona.Builtin(),
		Store:      conversation.NewStore(),
		Engine:     eng,
		Summarizer: summary.New(llm, log.NewNop(), 0),
	})
	require.NoError(t, err)
	return NewServer(persona.Builtin(), svc, log.NewNop())
}

func postChat(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestChat_MissingFields(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testutil.NewScriptLLM())

	for _, body := range []string{
		`{}`,
		`{"message": "hi"}`,
		`{"personaId": "hitesh"}`,
		`not json`,
	} {
		rec := postChat(t, srv, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Message and personaId are required", resp.Error)
	}
}

func TestChat_UnknownPersona(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testutil.NewScriptLLM())
	rec := postChat(t, srv, `{"message": "hi", "personaId": "nobody"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid persona ID", resp.Error)
}

func TestChat_StreamsStepsAndComplete(t *testing.T) {
	t.Parallel()

	llm := testutil.NewScriptLLM(
		`{"step": "START", "content": "Reading the question"}`,
		`{"step": "OUTPUT", "content": "Haanji, chai first!"}`,
	)
	srv := newTestServer(t, llm)
	rec := postChat(t, srv, `{"message": "Should I learn Go?", "personaId": "hitesh"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	events := testutil.ParseSSEEvents(t, rec.Body.String())
	require.NotEmpty(t, events)

	// All intermediate frames are step events; the last frame completes.
	var sawStart bool
	for _, ev := range events[:len(events)-1] {
		var step StepEvent
		require.NoError(t, json.Unmarshal([]byte(ev.Data), &step))
		assert.Equal(t, "step", step.Type)
		if step.Step == "START" {
			sawStart = true
			assert.Equal(t, "Reading the question", step.Content)
		}
	}
	assert.True(t, sawStart)

	var complete CompleteEvent
	require.NoError(t, json.Unmarshal([]byte(events[len(events)-1].Data), &complete))
	assert.Equal(t, "complete", complete.Type)
	assert.Equal(t, "Haanji, chai first!", complete.Response)
	assert.Equal(t, "hitesh", complete.Persona.ID)
	assert.Equal(t, "Hitesh Choudhary", complete.Persona.Name)
	assert.True(t, strings.HasPrefix(complete.ConversationID, "conv_"))
}

func TestChat_BackendFailureEndsWithErrorEvent(t *testing.T) {
	t.Parallel()

	llm := testutil.NewScriptLLM()
	llm.Err = assert.AnError
	srv := newTestServer(t, llm)
	rec := postChat(t, srv, `{"message": "hi", "personaId": "piyush"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := testutil.ParseSSEEvents(t, rec.Body.String())
	require.Len(t, events, 1)

	var ev ErrorEvent
	require.NoError(t, json.Unmarshal([]byte(events[0].Data), &ev))
	assert.Equal(t, "error", ev.Type)
	assert.Equal(t, "An error occurred while processing your request", ev.Error)
}

func TestChat_RecallReturnsPlainJSON(t *testing.T) {
	t.Parallel()

	llm := testutil.NewScriptLLM(`{"step": "OUTPUT", "content": "Closures capture variables."}`)
	llm.AddCompletion("We discussed closures, haanji.")
	srv := newTestServer(t, llm)

	first := postChat(t, srv, `{"message": "Explain closures", "personaId": "hitesh", "conversationId": "conv_r1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	rec := postChat(t, srv, `{"message": "what did you say earlier?", "personaId": "hitesh", "conversationId": "conv_r1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "We discussed closures, haanji.", resp.Response)
	assert.Equal(t, "hitesh", resp.Persona.ID)
	assert.Equal(t, "conv_r1", resp.ConversationID)

	// Recall never touched the streaming backend a second time.
	assert.Len(t, llm.StreamCalls(), 1)
}

func TestChat_ConversationContinuity(t *testing.T) {
	t.Parallel()

	llm := testutil.NewScriptLLM(
		`{"step": "OUTPUT", "content": "First answer"}`,
		`{"step": "OUTPUT", "content": "Second answer"}`,
	)
	srv := newTestServer(t, llm)

	first := postChat(t, srv, `{"message": "first question", "personaId": "piyush", "conversationId": "conv_c1"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postChat(t, srv, `{"message": "second question", "personaId": "piyush", "conversationId": "conv_c1"}`)
	require.Equal(t, http.StatusOK, second.Code)

	calls := llm.StreamCalls()
	require.Len(t, calls, 2)

	// Second turn replays the first exchange behind a fresh system message.
	msgs := calls[1]
	require.GreaterOrEqual(t, len(msgs), 4)
	assert.Equal(t, conversation.RoleSystem, msgs[0].Role)
	assert.Equal(t, "first question", msgs[1].Content)
	assert.Equal(t, conversation.RoleAssistant, msgs[2].Role)
	assert.Equal(t, "First answer", msgs[2].Content)
	assert.Equal(t, "second question", msgs[len(msgs)-1].Content)
}
