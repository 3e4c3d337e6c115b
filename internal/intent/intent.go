// Package intent decides whether a user utterance asks to recall earlier
// conversation content.
//
// Detection is a case-insensitive substring match against a fixed phrase
// list. This is deliberately coarse: "before" in an unrelated sentence
// triggers it too. That imprecision is an accepted trade for simplicity and
// must not be silently upgraded to anything smarter.
package intent

import "strings"

// recallPhrases is the fixed keyword set for recall detection.
var recallPhrases = []string{
	"last question",
	"last response",
	"previous question",
	"previous answer",
	"what did you say",
	"what did i ask",
	"earlier",
	"before",
	"above",
	"last time",
	"previous message",
	"what was that",
	"repeat",
}

// IsRecall reports whether the utterance asks about previous context.
// Pure function, no side effects.
func IsRecall(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, phrase := range recallPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
