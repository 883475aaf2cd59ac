package service

import (
	"context"
	"fmt"
	"time"

	"github.com/formgate/formgate/internal/dispatch"
	"github.com/formgate/formgate/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SubmissionService drives a trigger through the prompt to a published
// result. The pipeline is split at its single suspension point: Trigger
// opens a prompt session, Submit or Cancel closes it. Sessions expire
// on their own after the prompt timeout.
type SubmissionService struct {
	store      domain.FormStore
	cooldowns  domain.CooldownTracker
	sessions   domain.SessionStore
	dispatcher dispatch.Dispatcher
	now        func() time.Time
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(store domain.FormStore, cooldowns domain.CooldownTracker, sessions domain.SessionStore, dispatcher dispatch.Dispatcher) *SubmissionService {
	return &SubmissionService{
		store:      store,
		cooldowns:  cooldowns,
		sessions:   sessions,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// TriggerResult is the opened prompt session handed back to the
// platform layer for presentation.
type TriggerResult struct {
	SessionID uuid.UUID          `json:"session_id"`
	Prompt    *domain.PromptSpec `json:"prompt"`
}

// Trigger starts a submission for a user pressing a form's button. It
// consumes no cooldown: blocked, missing and misconfigured forms are
// all terminal without side effects.
func (s *SubmissionService) Trigger(ctx context.Context, ref domain.FormRef, user domain.UserID) (*TriggerResult, error) {
	remaining, err := s.cooldowns.Remaining(ctx, ref, user)
	if err != nil {
		return nil, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if remaining > 0 {
		return nil, &domain.CooldownError{Remaining: remaining}
	}

	form, err := s.store.Get(ctx, ref.Workspace, ref.Form)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return nil, domain.ErrFormNotFound
	}

	// A form without fields cannot be shown. Checked before the
	// permission probe so a misconfigured form never reaches the
	// dispatcher at all.
	prompt := form.Prompt()
	if prompt == nil {
		return nil, domain.ErrMisconfigured
	}

	allowed, err := s.dispatcher.CanCreatePrivateConversation(ctx, form.Destination)
	if err != nil {
		return nil, fmt.Errorf("failed to check destination permissions: %w", err)
	}
	if !allowed {
		return nil, domain.ErrMisconfigured
	}

	session := domain.NewPromptSession(ref.Workspace, user, *form, s.now())
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store prompt session: %w", err)
	}

	log.Debug().
		Str("workspace", string(ref.Workspace)).
		Str("form", ref.Form.String()).
		Str("user", string(user)).
		Str("session", session.ID.String()).
		Msg("prompt session opened")

	return &TriggerResult{SessionID: session.ID, Prompt: prompt}, nil
}

// SubmissionResult references the private conversation holding the
// published result.
type SubmissionResult struct {
	Conversation domain.ConversationRef `json:"conversation"`
}

// Submit completes a prompt session: it creates the private
// sub-conversation named after the submitter, grants them access,
// posts the composed result, and only then consumes the cooldown the
// form carried when the session was opened. Dispatch failures leave
// the cooldown untouched.
func (s *SubmissionService) Submit(ctx context.Context, sessionID uuid.UUID, user domain.UserID, displayName string, answers []string) (*SubmissionResult, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt session: %w", err)
	}
	if session == nil || session.User != user {
		return nil, domain.ErrSessionExpired
	}

	form := &session.Form
	if err := validateAnswers(form, answers); err != nil {
		return nil, err
	}

	if displayName == "" {
		displayName = string(user)
	}

	ref, err := s.dispatcher.CreatePrivateConversation(ctx, form.Destination, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to create private conversation: %w", err)
	}

	if err := s.dispatcher.GrantAccess(ctx, ref, user); err != nil {
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}

	message := form.ComposeResult(displayName, user, answers, s.now())
	if err := s.dispatcher.Post(ctx, ref, message); err != nil {
		return nil, fmt.Errorf("failed to post result: %w", err)
	}

	// The session is consumed; losing this delete only means the
	// session lingers until its TTL.
	if _, err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Str("session", sessionID.String()).Msg("failed to delete consumed session")
	}

	formRef := form.Ref(session.Workspace)
	if err := s.cooldowns.Trigger(ctx, formRef, user, form.Cooldown); err != nil {
		return nil, fmt.Errorf("failed to set cooldown: %w", err)
	}

	log.Info().
		Str("workspace", string(session.Workspace)).
		Str("form", form.ID.String()).
		Str("user", string(user)).
		Str("conversation", string(ref)).
		Msg("submission dispatched")

	return &SubmissionResult{Conversation: ref}, nil
}

// Cancel drops a prompt session without side effects. Cancelling a
// session that is already gone is not an error.
func (s *SubmissionService) Cancel(ctx context.Context, sessionID uuid.UUID, user domain.UserID) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load prompt session: %w", err)
	}
	if session == nil || session.User != user {
		return nil
	}

	if _, err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete prompt session: %w", err)
	}

	return nil
}

// validateAnswers checks the submission against the field sequence.
// Per-field length bounds are the prompting layer's responsibility.
func validateAnswers(form *domain.Form, answers []string) error {
	if len(answers) != len(form.Fields) {
		return domain.ErrIncompleteSubmission
	}
	for i, field := range form.Fields {
		if field.Required && answers[i] == "" {
			return domain.ErrIncompleteSubmission
		}
	}
	return nil
}
