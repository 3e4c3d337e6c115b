package conversation

import "sync"

// Store is the process-wide mapping from conversation id to ordered message
// history.
//
// The mutex only keeps the map itself safe for concurrent use. There is no
// per-conversation locking or transactional isolation: two turns racing on
// the same id interleave their Get/Replace pairs non-deterministically and
// the last writer wins. That is an accepted limitation under the
// one-user-per-conversation assumption; adding a global lock would change
// throughput characteristics and is deliberately not done here.
type Store struct {
	mu            sync.RWMutex
	conversations map[string][]Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{conversations: make(map[string][]Message)}
}

// Get returns a copy of the message history for id, or an empty slice when
// the conversation does not exist. The copy keeps callers from mutating
// stored state through the returned slice.
func (s *Store) Get(id string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.conversations[id]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Append adds a message to the conversation, creating it if absent.
func (s *Store) Append(id string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = append(s.conversations[id], msg)
}

// Replace sets the full message history for id.
func (s *Store) Replace(id string, msgs []Message) {
	cp := make([]Message, len(msgs))
	copy(cp, msgs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = cp
}

// Len returns the number of stored conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
