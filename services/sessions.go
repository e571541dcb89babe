package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionTTL is the idle lifetime of a wizard session. Every handler access
// refreshes it; a session untouched for this long is treated as abandoned.
const sessionTTL = 2 * time.Hour

// Session binds a wizard to an API session. Each session exclusively owns
// its draft until submission; RecordID is set when editing an existing
// record so Submit updates instead of creating.
type Session struct {
	ID       string
	Kind     string
	RecordID string
	Wizard   *Wizard
	Started  time.Time

	lastSeen time.Time
}

// SessionStore keeps live wizard sessions in memory. Drafts only become
// durable on submission, so losing the process loses unsaved drafts — same
// as closing the browser tab in the original flow. Abandoned sessions are
// swept out once their idle TTL passes.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Start opens a new wizard session of the given kind around draft. Stale
// sessions are swept here so the map stays bounded by active users.
func (s *SessionStore) Start(kind, recordID string, draft *Draft) *Session {
	draft.Kind = kind
	var steps []Step
	if kind == "quotation" {
		steps = QuotationSteps()
	} else {
		steps = KitSteps()
	}
	now := time.Now()
	sess := &Session{
		ID:       uuid.NewString(),
		Kind:     kind,
		RecordID: recordID,
		Wizard:   NewWizard(steps, draft),
		Started:  now,
		lastSeen: now,
	}
	s.mu.Lock()
	for id, old := range s.sessions {
		if now.Sub(old.lastSeen) > sessionTTL {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get looks up a live session by ID and refreshes its idle timer. An expired
// session is indistinguishable from a missing one.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(sess.lastSeen) > sessionTTL {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = time.Now()
	return sess, true
}

// End discards a session, abandoning any unsaved draft.
func (s *SessionStore) End(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
