package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	userports "github.com/Apurer/go-gin-order-api/internal/domains/users/ports"
)

var _ userports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps sessions in redis with a TTL, so no purge job is needed.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, userID int64, token string) error {
	return s.client.Set(ctx, sessionKey(userID), token, s.ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, sessionKey(userID)).Err()
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}
