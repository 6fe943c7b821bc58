package memory

import (
	"sync"

	"fisiomaster-admin/internal/session"
)

// SessionStore guarda la sesión en memoria. Para tests y modo efímero.
type SessionStore struct {
	mu   sync.RWMutex
	sess session.Session
	has  bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load() (session.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess, s.has, nil
}

func (s *SessionStore) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	s.has = true
	return nil
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = session.Session{}
	s.has = false
	return nil
}
