package domain

import (
	"time"

	"github.com/google/uuid"
)

// PromptSession is an in-flight submission waiting at the prompt. It
// carries the form copy loaded when the prompt was built, so an admin
// deleting or editing the form mid-flight does not affect the
// submission. Sessions expire after PromptTimeout.
type PromptSession struct {
	ID        uuid.UUID   `json:"id"`
	Workspace WorkspaceID `json:"workspace"`
	User      UserID      `json:"user"`
	Form      Form        `json:"form"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewPromptSession opens a session for a user answering a form's prompt.
func NewPromptSession(workspace WorkspaceID, user UserID, form Form, now time.Time) *PromptSession {
	return &PromptSession{
		ID:        uuid.New(),
		Workspace: workspace,
		User:      user,
		Form:      form,
		CreatedAt: now,
	}
}
