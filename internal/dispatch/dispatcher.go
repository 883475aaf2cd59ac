// Package dispatch defines the boundary to the platform layer that
// hosts published submissions. The submission pipeline only ever talks
// to this interface; rendering and access control stay on the platform
// side.
package dispatch

import (
	"context"

	"github.com/formgate/formgate/internal/domain"
)

// Dispatcher creates private sub-conversations, posts composed results
// into them, and grants submitters access.
type Dispatcher interface {
	// CanCreatePrivateConversation reports whether the destination
	// channel currently permits creating private sub-conversations.
	CanCreatePrivateConversation(ctx context.Context, destination domain.ChannelID) (bool, error)

	// CreatePrivateConversation creates a private sub-conversation
	// under the destination channel with the given title.
	CreatePrivateConversation(ctx context.Context, destination domain.ChannelID, title string) (domain.ConversationRef, error)

	// Post publishes a composed message into the conversation.
	Post(ctx context.Context, ref domain.ConversationRef, message domain.ComposedMessage) error

	// GrantAccess adds the user to the conversation.
	GrantAccess(ctx context.Context, ref domain.ConversationRef, user domain.UserID) error
}
