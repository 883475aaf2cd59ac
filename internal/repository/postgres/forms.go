package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/formgate/formgate/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FormStore persists form aggregates as JSONB rows keyed by
// (workspace_id, form_id). The upsert overwrites the whole aggregate,
// matching the last-write-wins contract.
type FormStore struct {
	db *DB
}

// NewFormStore creates a Postgres-backed form store.
func NewFormStore(db *DB) *FormStore {
	return &FormStore{db: db}
}

func (s *FormStore) Get(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (*domain.Form, error) {
	query := `
		SELECT data
		FROM forms
		WHERE workspace_id = $1 AND form_id = $2
	`

	var data []byte
	err := s.db.Pool.QueryRow(ctx, query, string(workspace), uuid.UUID(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
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

	query := `
		INSERT INTO forms (workspace_id, form_id, title, data, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, form_id)
		DO UPDATE SET title = EXCLUDED.title, data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.Pool.Exec(ctx, query,
		string(workspace),
		uuid.UUID(form.ID),
		form.Title,
		data,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}

	return nil
}

func (s *FormStore) Delete(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (bool, error) {
	query := `
		DELETE FROM forms
		WHERE workspace_id = $1 AND form_id = $2
	`

	tag, err := s.db.Pool.Exec(ctx, query, string(workspace), uuid.UUID(id))
	if err != nil {
		return false, fmt.Errorf("failed to delete form: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *FormStore) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	query := `
		SELECT form_id, title
		FROM forms
		WHERE workspace_id = $1
		ORDER BY title
	`

	rows, err := s.db.Pool.Query(ctx, query, string(workspace))
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	var summaries []domain.FormSummary
	for rows.Next() {
		var id uuid.UUID
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("failed to scan form: %w", err)
		}
		summaries = append(summaries, domain.FormSummary{ID: domain.FormID(id), Title: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forms: %w", err)
	}

	return summaries, nil
}
