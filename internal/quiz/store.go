package quiz

import "sync"

// Store keeps live sessions per user. Sessions are ephemeral; results are
// the only quiz state that reaches the database.
type Store struct {
    mu       sync.Mutex
    sessions map[string]*Session
}

func NewStore() *Store {
    return &Store{sessions: make(map[string]*Session)}
}

func (s *Store) Get(userID string) *Session {
    s.mu.Lock()
    defer s.mu.Unlock()
    return s.sessions[userID]
}

func (s *Store) Put(userID string, sess *Session) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.sessions[userID] = sess
}

func (s *Store) Delete(userID string) {
    s.mu.Lock()
    defer s.mu.Unlock()
    delete(s.sessions, userID)
}
