package domain

import (
	"fmt"
)

// MentionKind distinguishes role and user mentions.
type MentionKind string

const (
	MentionRole MentionKind = "role"
	MentionUser MentionKind = "user"
)

// Mention references a role or user announced in every published
// result of a form.
type Mention struct {
	Kind MentionKind `json:"kind"`
	ID   string      `json:"id"`
}

// RoleMention builds a role mention.
func RoleMention(id RoleID) Mention {
	return Mention{Kind: MentionRole, ID: string(id)}
}

// UserMention builds a user mention.
func UserMention(id UserID) Mention {
	return Mention{Kind: MentionUser, ID: string(id)}
}

// String renders the mention in platform markup.
func (m Mention) String() string {
	if m.Kind == MentionRole {
		return fmt.Sprintf("<@&%s>", m.ID)
	}
	return fmt.Sprintf("<@%s>", m.ID)
}
