package memory

import (
	"context"
	"sync"
)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, userID int64, token string) error {
	s.sessions.Store(userID, token)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, userID int64) error {
	s.sessions.Delete(userID)
	return nil
}
