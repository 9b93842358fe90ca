// Package session keeps per-conversation history in memory. Sessions are
// created on first use and live for the process lifetime.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
)

// DefaultHistoryLimit caps a session's history before FIFO eviction.
const DefaultHistoryLimit = 50

// Turn is one request/response exchange.
type Turn struct {
	RawQuery string
	Response chat.Response
	Language string
	At       time.Time
}

// Session holds one conversation's history. Its mutex serializes appends so
// concurrent requests on the same id never interleave partial writes.
type Session struct {
	ID string

	mu      sync.Mutex
	history []Turn
	limit   int
}

// Store maps session ids to sessions. Lookups take a read lock; distinct
// sessions never block each other on append.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewStore creates a store. limit <= 0 uses DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{sessions: make(map[string]*Session), limit: limit}
}

// EnsureID returns the given id, or a fresh UUID when it is empty.
func EnsureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// Get returns the session for id, creating it on first use.
func (s *Store) Get(id string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[id]; ok {
		return sess
	}
	sess = &Session{ID: id, limit: s.limit}
	s.sessions[id] = sess
	return sess
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Append records a turn, evicting the oldest entry once the cap is reached.
func (sess *Session) Append(rawQuery string, resp chat.Response, language string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.history = append(sess.history, Turn{
		RawQuery: rawQuery,
		Response: resp,
		Language: language,
		At:       time.Now(),
	})
	if len(sess.history) > sess.limit {
		sess.history = sess.history[len(sess.history)-sess.limit:]
	}
}

// History returns a copy of the session's turns, oldest first.
func (sess *Session) History() []Turn {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]Turn, len(sess.history))
	copy(out, sess.history)
	return out
}

// FindLastRecommendation scans newest-first for the most recent
// course_recommendation response.
func (sess *Session) FindLastRecommendation() (chat.Response, bool) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	for i := len(sess.history) - 1; i >= 0; i-- {
		if sess.history[i].Response.Type == chat.TypeRecommendation {
			return sess.history[i].Response, true
		}
	}
	return chat.Response{}, false
}
