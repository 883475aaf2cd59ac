package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/formgate/formgate/internal/domain"
	"github.com/redis/go-redis/v9"
)

// formsKey is the hash holding all of a workspace's forms, one hash
// field per form id.
func formsKey(workspace domain.WorkspaceID) string {
	return fmt.Sprintf("forms:%s", workspace)
}

// FormStore persists form aggregates as JSON values in a per-workspace
// hash. HSET/HGET/HDEL are atomic per key, which is the whole contract.
type FormStore struct {
	client *Client
}

// NewFormStore creates a Redis-backed form store.
func NewFormStore(client *Client) *FormStore {
	return &FormStore{client: client}
}

func (s *FormStore) Get(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (*domain.Form, error) {
	data, err := s.client.rdb.HGet(ctx, formsKey(workspace), id.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	var form domain.Form
	if err := json.Unmarshal(data, &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form: %w", err)
	}

	return &form, nil
}

func (s *FormStore) Save(ctx context.Context, workspace domain.WorkspaceID, form *domain.Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal form: %w", err)
	}

	if err := s.client.rdb.HSet(ctx, formsKey(workspace), form.ID.String(), data).Err(); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}

	return nil
}

func (s *FormStore) Delete(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (bool, error) {
	removed, err := s.client.rdb.HDel(ctx, formsKey(workspace), id.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete form: %w", err)
	}
	return removed > 0, nil
}

func (s *FormStore) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	values, err := s.client.rdb.HVals(ctx, formsKey(workspace)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	summaries := make([]domain.FormSummary, 0, len(values))
	for _, value := range values {
		var form domain.Form
		if err := json.Unmarshal([]byte(value), &form); err != nil {
			return nil, fmt.Errorf("failed to unmarshal form: %w", err)
		}
		summaries = append(summaries, domain.FormSummary{ID: form.ID, Title: form.Title})
	}

	return summaries, nil
}
