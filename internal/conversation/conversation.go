// Package conversation holds the message model and the process-wide
// conversation store.
//
// Conversations live for the process lifetime only; there is no eviction,
// expiry, or persistence. A real deployment would swap the store for an
// externally owned one with an expiry policy.
package conversation

import (
	"strconv"
	"time"
)

// Message roles. Ordering of messages defines the context window sent to
// the completion backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System builds a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User builds a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant builds an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// NewID generates a fresh conversation identifier. The token is derived from
// the current wall clock, matching the id shape clients already hold.
func NewID() string {
	return "conv_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
