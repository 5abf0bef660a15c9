package ports

import "context"

// SessionStore abstracts server-side session/token persistence.
type SessionStore interface {
	Save(ctx context.Context, userID int64, token string) error
	Delete(ctx context.Context, userID int64) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ int64, _ string) error { return nil }
func (noopSessionStore) Delete(_ context.Context, _ int64) error         { return nil }
