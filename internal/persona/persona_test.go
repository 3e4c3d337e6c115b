package persona

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_AllIDsResolve(t *testing.T) {
	t.Parallel()

	c := Builtin()
	require.Positive(t, c.Len())

	for _, p := range c.All() {
		got, err := c.Lookup(p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestCatalog_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	_, err := NewCatalog([]Persona{
		{ID: "a", Name: "First"},
		{ID: "a", Name: "Second"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestCatalog_LookupUnknown(t *testing.T) {
	t.Parallel()

	c := Builtin()
	_, err := c.Lookup("nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRenderPrompt_ContainsContract(t *testing.T) {
	t.Parallel()

	for _, p := range Builtin().All() {
		t.Run(p.ID, func(t *testing.T) {
			t.Parallel()

			prompt := RenderPrompt(p)

			// The persona's identity and the literal step format are the
			// two pieces the engine and the model both depend on.
			assert.Contains(t, prompt, p.Name)
			assert.Contains(t, prompt, StepFormat)
			assert.Contains(t, prompt, "START → THINK → EVALUATE → OUTPUT")

			for _, exp := range p.Expertise {
				assert.Contains(t, prompt, exp)
			}
		})
	}
}

func TestRenderPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	p := Builtin().All()[0]
	assert.Equal(t, RenderPrompt(p), RenderPrompt(p))
}
