package domain

import (
	"github.com/google/uuid"
)

// WorkspaceID identifies an isolated tenant scope. All forms and
// cooldowns are partitioned by it.
type WorkspaceID string

// ChannelID references the platform channel under which private
// sub-conversations are created.
type ChannelID string

// UserID identifies a platform user.
type UserID string

// RoleID identifies a platform role.
type RoleID string

// ConversationRef references a private sub-conversation created by the
// dispatcher for a single submission.
type ConversationRef string

// FormID is the opaque identifier of a form. It is generated at
// creation time and never reused.
type FormID uuid.UUID

// NewFormID generates a fresh form identifier.
func NewFormID() FormID {
	return FormID(uuid.New())
}

// ParseFormID parses the canonical string representation of a FormID.
func ParseFormID(s string) (FormID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return FormID{}, err
	}
	return FormID(id), nil
}

func (id FormID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText makes FormID serialize as its canonical string form.
func (id FormID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *FormID) UnmarshalText(text []byte) error {
	parsed, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = FormID(parsed)
	return nil
}

// FormRef addresses a form within its workspace.
type FormRef struct {
	Workspace WorkspaceID
	Form      FormID
}
