package engine

import (
	"encoding/json"
	"strings"
)

// Phase is one state of the step protocol. The model reports its phase in
// the "step" field of each emitted object; anything outside the four known
// phases maps to PhaseUnknown, which is terminal.
type Phase string

const (
	PhaseStart    Phase = "START"
	PhaseThink    Phase = "THINK"
	PhaseEvaluate Phase = "EVALUATE"
	PhaseOutput   Phase = "OUTPUT"
	PhaseUnknown  Phase = "UNKNOWN"
)

// ParsePhase maps a step label onto a Phase. Labels are matched exactly:
// the prompt contract mandates uppercase.
func ParsePhase(label string) Phase {
	switch Phase(label) {
	case PhaseStart, PhaseThink, PhaseEvaluate, PhaseOutput:
		return Phase(label)
	default:
		return PhaseUnknown
	}
}

// Terminal reports whether the loop stops at this phase.
func (p Phase) Terminal() bool {
	return p == PhaseOutput || p == PhaseUnknown
}

// Step is one parsed unit of model output. Steps are transient: only the
// content of the terminal step survives a turn.
type Step struct {
	Step    string `json:"step"`
	Content string `json:"content"`
}

// Phase returns the step's protocol phase.
func (s Step) Phase() Phase {
	return ParsePhase(s.Step)
}

// ParseStep attempts a strict parse of buf as a single step object. A failed
// parse is the expected state while the stream is mid-emission, so the only
// signal is the boolean; buf with trailing content after the object also
// fails.
func ParseStep(buf string) (Step, bool) {
	var st Step
	dec := json.NewDecoder(strings.NewReader(buf))
	if err := dec.Decode(&st); err != nil {
		return Step{}, false
	}
	if dec.More() {
		return Step{}, false
	}
	return st, true
}

// extractContent pulls the content field out of a raw buffer, falling back
// to the buffer itself when it is not a parseable step object or carries no
// content.
func extractContent(raw string) string {
	if st, ok := ParseStep(raw); ok && st.Content != "" {
		return st.Content
	}
	return raw
}
