package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/formgate/formgate/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("sessions:%s", id)
}

// SessionStore holds in-flight prompt sessions. Keys carry the prompt
// timeout as TTL, so an abandoned prompt cleans itself up.
type SessionStore struct {
	client *Client
}

// NewSessionStore creates a Redis-backed prompt session store.
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Put(ctx context.Context, session *domain.PromptSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.rdb.Set(ctx, sessionKey(session.ID), data, domain.PromptTimeout).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*domain.PromptSession, error) {
	data, err := s.client.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.PromptSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.client.rdb.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return removed > 0, nil
}
