package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guruchat/guru/internal/testutil"
)

func TestPersonas_List(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, testutil.NewScriptLLM())
	rec := get(t, srv.Handler(), "/api/personas")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PersonaListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Personas, 2)

	ids := []string{resp.Personas[0].ID, resp.Personas[1].ID}
	assert.Contains(t, ids, "hitesh")
	assert.Contains(t, ids, "piyush")
	for _, p := range resp.Personas {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Description)
		assert.NotEmpty(t, p.Expertise)
	}
}
