package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guruchat/guru/internal/log"
	"github.com/guruchat/guru/internal/persona"
	"github.com/guruchat/guru/internal/testutil"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth_Liveness(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testutil.NewScriptLLM())
	rec := get(t, srv.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHealth_Readiness(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testutil.NewScriptLLM())
	rec := get(t, srv.Handler(), "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestHealth_ReadinessWithoutService(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	NewHealthHandler(persona.Builtin(), nil, log.NewNop()).RegisterRoutes(mux)

	rec := get(t, mux, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
