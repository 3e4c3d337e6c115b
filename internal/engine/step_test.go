package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  Phase
	}{
		{"START", PhaseStart},
		{"THINK", PhaseThink},
		{"EVALUATE", PhaseEvaluate},
		{"OUTPUT", PhaseOutput},
		{"output", PhaseUnknown}, // case matters: the prompt mandates uppercase
		{"DONE", PhaseUnknown},
		{"", PhaseUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePhase(tt.label), "label %q", tt.label)
	}
}

func TestPhase_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, PhaseOutput.Terminal())
	assert.True(t, PhaseUnknown.Terminal())
	assert.False(t, PhaseStart.Terminal())
	assert.False(t, PhaseThink.Terminal())
	assert.False(t, PhaseEvaluate.Terminal())
}

func TestParseStep(t *testing.T) {
	t.Parallel()

	t.Run("complete object", func(t *testing.T) {
		t.Parallel()
		st, ok := ParseStep(`{"step": "THINK", "content": "breaking it down"}`)
		require.True(t, ok)
		assert.Equal(t, "THINK", st.Step)
		assert.Equal(t, "breaking it down", st.Content)
		assert.Equal(t, PhaseThink, st.Phase())
	})

	t.Run("partial buffer fails silently", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseStep(`{"step": "THINK", "con`)
		assert.False(t, ok)
	})

	t.Run("trailing garbage fails", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseStep(`{"step": "OUTPUT", "content": "x"} extra`)
		assert.False(t, ok)
	})

	t.Run("non-object fails", func(t *testing.T) {
		t.Parallel()
		_, ok := ParseStep(`plain prose answer`)
		assert.False(t, ok)
	})
}

func TestExtractContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Done", extractContent(`{"step": "OUTPUT", "content": "Done"}`))
	// Empty content falls back to the raw buffer.
	raw := `{"step": "OUTPUT", "content": ""}`
	assert.Equal(t, raw, extractContent(raw))
	assert.Equal(t, "not json", extractContent("not json"))
}
