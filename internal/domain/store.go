package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FormSummary is the (id, title) pair exposed for lookup and
// autocomplete surfaces.
type FormSummary struct {
	ID    FormID `json:"id"`
	Title string `json:"title"`
}

// FormStore persists form aggregates, keyed by form id within a
// workspace. Saves always overwrite the whole aggregate; operations
// are atomic per key and there are no cross-key transactions.
type FormStore interface {
	// Get returns the form, or nil when the id is unknown.
	Get(ctx context.Context, workspace WorkspaceID, id FormID) (*Form, error)
	// Save upserts the whole aggregate.
	Save(ctx context.Context, workspace WorkspaceID, form *Form) error
	// Delete removes the form, reporting whether it existed.
	Delete(ctx context.Context, workspace WorkspaceID, id FormID) (bool, error)
	// List returns the (id, title) pairs of all forms in the workspace.
	List(ctx context.Context, workspace WorkspaceID) ([]FormSummary, error)
}

// CooldownTracker rate-limits submissions per (workspace, form, user).
// Entries self-expire with the duration they were triggered with; a
// later change to the form's cooldown does not touch issued entries.
type CooldownTracker interface {
	// Remaining returns the time left before the user may submit
	// again, or zero when unrestricted.
	Remaining(ctx context.Context, ref FormRef, user UserID) (time.Duration, error)
	// Trigger creates or overwrites an entry expiring after duration.
	// Zero and negative durations are a no-op.
	Trigger(ctx context.Context, ref FormRef, user UserID, duration time.Duration) error
	// Clear removes the entry, reporting whether one existed.
	Clear(ctx context.Context, ref FormRef, user UserID) (bool, error)
}

// SessionStore holds in-flight prompt sessions with a TTL of
// PromptTimeout. A session that is gone was cancelled, consumed, or
// timed out; the pipeline does not distinguish.
type SessionStore interface {
	Put(ctx context.Context, session *PromptSession) error
	// Get returns the session, or nil when it is gone.
	Get(ctx context.Context, id uuid.UUID) (*PromptSession, error)
	// Delete removes the session, reporting whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
