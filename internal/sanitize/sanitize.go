// Package sanitize post-processes raw model output into display text.
//
// Model output reaching this point may still be a whole step object, carry
// literal escape sequences from being embedded in JSON, or end in a dangling
// backslash or quote when the stream was cut off mid-token. Clean undoes all
// of that. If nothing is recoverable the raw text passes through as-is:
// showing the user something garbled beats hiding their answer.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// contentPattern extracts the first "content" field from text that looks
// like a step object but fails strict parsing.
var contentPattern = regexp.MustCompile(`"content":\s*"([^"]+)"`)

// stepEnvelope mirrors the step-object shape for the embedded-object check.
type stepEnvelope struct {
	Step    string `json:"step"`
	Content string `json:"content"`
}

// Clean converts raw model output into display text. Idempotent: cleaning
// already-clean text returns it unchanged.
func Clean(raw string) string {
	text := raw

	// A response that still carries both markers is an un-extracted step
	// object. Prefer a strict parse; fall back to regex extraction.
	if strings.Contains(text, `"step"`) && strings.Contains(text, `"content"`) {
		var env stepEnvelope
		if err := json.Unmarshal([]byte(text), &env); err == nil {
			if env.Content != "" {
				text = env.Content
			}
		} else if m := contentPattern.FindStringSubmatch(text); m != nil {
			text = m[1]
		}
	}

	// Undo escaping artifacts. The replacements run sequentially, in this
	// order; each pass feeds the next.
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\"`, `"`)
	text = strings.ReplaceAll(text, `\t`, "\t")
	text = strings.ReplaceAll(text, `\\`, `\`)
	text = strings.TrimSpace(text)

	// A trailing backslash or quote is the signature of a truncated stream.
	if strings.HasSuffix(text, `\`) || strings.HasSuffix(text, `"`) {
		text = strings.TrimSpace(strings.TrimRight(text, `\"`))
	}

	return text
}
