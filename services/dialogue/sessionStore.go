// File: services/dialogue/sessionStore.go
package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"flavortable/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "booking:session:"

// SessionStore keeps the merged slot state per session in Redis. A missing
// key is a fresh session with all slots unknown. The TTL is refreshed on
// every write, so only abandoned conversations expire.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (models.BookingDetails, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.BookingDetails{}, nil
	}
	if err != nil {
		return models.BookingDetails{}, err
	}
	var details models.BookingDetails
	if err := json.Unmarshal([]byte(data), &details); err != nil {
		return models.BookingDetails{}, err
	}
	return details, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID string, details models.BookingDetails) error {
	key := sessionPrefix + sessionID
	b, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}
