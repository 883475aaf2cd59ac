package service

import (
	"context"
	"fmt"
	"time"

	"github.com/formgate/formgate/internal/dispatch"
	"github.com/formgate/formgate/internal/domain"
)

// FormService handles the admin operations on forms. Every mutation is
// an independent read-modify-write against the form store; concurrent
// edits of the same form race under last-write-wins.
type FormService struct {
	store      domain.FormStore
	cooldowns  domain.CooldownTracker
	dispatcher dispatch.Dispatcher
}

// NewFormService creates a new form service.
func NewFormService(store domain.FormStore, cooldowns domain.CooldownTracker, dispatcher dispatch.Dispatcher) *FormService {
	return &FormService{
		store:      store,
		cooldowns:  cooldowns,
		dispatcher: dispatcher,
	}
}

// load fetches a form or reports it gone.
func (s *FormService) load(ctx context.Context, ref domain.FormRef) (*domain.Form, error) {
	form, err := s.store.Get(ctx, ref.Workspace, ref.Form)
	if err != nil {
		return nil, fmt.Errorf("failed to load form: %w", err)
	}
	if form == nil {
		return nil, domain.ErrFormNotFound
	}
	return form, nil
}

// checkDestination verifies the channel still permits creating private
// sub-conversations.
func (s *FormService) checkDestination(ctx context.Context, destination domain.ChannelID) error {
	allowed, err := s.dispatcher.CanCreatePrivateConversation(ctx, destination)
	if err != nil {
		return fmt.Errorf("failed to check destination permissions: %w", err)
	}
	if !allowed {
		return domain.ErrMisconfigured
	}
	return nil
}

// Create creates a form with the given title and destination. The
// destination must permit private sub-conversations up front.
func (s *FormService) Create(ctx context.Context, workspace domain.WorkspaceID, title, description string, destination domain.ChannelID, mention *domain.Mention, cooldown time.Duration) (*domain.Form, error) {
	if err := s.checkDestination(ctx, destination); err != nil {
		return nil, err
	}

	form, err := domain.NewForm(title, destination)
	if err != nil {
		return nil, err
	}
	if err := form.SetDescription(description); err != nil {
		return nil, err
	}
	form.Mention = mention
	form.SetCooldown(cooldown)

	if err := s.store.Save(ctx, workspace, form); err != nil {
		return nil, fmt.Errorf("failed to save form: %w", err)
	}

	return form, nil
}

// Delete removes a form. Already-issued cooldown entries keep their
// expiry; in-flight submissions complete on their loaded copy.
func (s *FormService) Delete(ctx context.Context, ref domain.FormRef) error {
	existed, err := s.store.Delete(ctx, ref.Workspace, ref.Form)
	if err != nil {
		return fmt.Errorf("failed to delete form: %w", err)
	}
	if !existed {
		return domain.ErrFormNotFound
	}
	return nil
}

// Get returns a form by reference.
func (s *FormService) Get(ctx context.Context, ref domain.FormRef) (*domain.Form, error) {
	return s.load(ctx, ref)
}

// List returns the (id, title) pairs of all forms in a workspace.
func (s *FormService) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	summaries, err := s.store.List(ctx, workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return summaries, nil
}

// update runs a mutation inside a read-modify-write cycle.
func (s *FormService) update(ctx context.Context, ref domain.FormRef, mutate func(*domain.Form) error) error {
	form, err := s.load(ctx, ref)
	if err != nil {
		return err
	}
	if err := mutate(form); err != nil {
		return err
	}
	if err := s.store.Save(ctx, ref.Workspace, form); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}
	return nil
}

// Rename replaces a form's title.
func (s *FormService) Rename(ctx context.Context, ref domain.FormRef, title string) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		return form.SetTitle(title)
	})
}

// SetDescription replaces a form's description.
func (s *FormService) SetDescription(ctx context.Context, ref domain.FormRef, description string) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		return form.SetDescription(description)
	})
}

// SetCooldown replaces a form's cooldown. Existing entries keep the
// duration they were issued with.
func (s *FormService) SetCooldown(ctx context.Context, ref domain.FormRef, cooldown time.Duration) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		form.SetCooldown(cooldown)
		return nil
	})
}

// SetMention replaces who is mentioned on submission. Nil clears it.
func (s *FormService) SetMention(ctx context.Context, ref domain.FormRef, mention *domain.Mention) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		form.Mention = mention
		return nil
	})
}

// SetDestination moves the form to a new destination channel after
// verifying permissions there.
func (s *FormService) SetDestination(ctx context.Context, ref domain.FormRef, destination domain.ChannelID) error {
	if err := s.checkDestination(ctx, destination); err != nil {
		return err
	}
	return s.update(ctx, ref, func(form *domain.Form) error {
		form.Destination = destination
		return nil
	})
}

// AddField appends or inserts a new field.
func (s *FormService) AddField(ctx context.Context, ref domain.FormRef, field domain.FormField, insertBefore *int) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		return form.AddField(field, insertBefore)
	})
}

// RemoveField removes the field at index. An unknown index aborts the
// cycle without writing.
func (s *FormService) RemoveField(ctx context.Context, ref domain.FormRef, index int) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		if !form.RemoveField(index) {
			return domain.ErrFieldNotFound
		}
		return nil
	})
}

// MoveField moves the field at index to the destination position. An
// unknown index aborts the cycle without writing.
func (s *FormService) MoveField(ctx context.Context, ref domain.FormRef, index, destination int) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		moved, err := form.MoveField(index, destination)
		if err != nil {
			return err
		}
		if !moved {
			return domain.ErrFieldNotFound
		}
		return nil
	})
}

// updateField runs a mutation on one field inside a read-modify-write
// cycle.
func (s *FormService) updateField(ctx context.Context, ref domain.FormRef, index int, mutate func(*domain.FormField) error) error {
	return s.update(ctx, ref, func(form *domain.Form) error {
		field, ok := form.Field(index)
		if !ok {
			return domain.ErrFieldNotFound
		}
		return mutate(field)
	})
}

// RenameField replaces a field's display label.
func (s *FormService) RenameField(ctx context.Context, ref domain.FormRef, index int, name string) error {
	return s.updateField(ctx, ref, index, func(field *domain.FormField) error {
		return field.SetName(name)
	})
}

// SetFieldStyle replaces a field's render style.
func (s *FormService) SetFieldStyle(ctx context.Context, ref domain.FormRef, index int, style domain.FieldStyle) error {
	return s.updateField(ctx, ref, index, func(field *domain.FormField) error {
		field.Style = style
		return nil
	})
}

// SetFieldPlaceholder replaces a field's placeholder text.
func (s *FormService) SetFieldPlaceholder(ctx context.Context, ref domain.FormRef, index int, placeholder string) error {
	return s.updateField(ctx, ref, index, func(field *domain.FormField) error {
		return field.SetPlaceholder(placeholder)
	})
}

// SetFieldValidation replaces a field's length bounds and required flag.
func (s *FormService) SetFieldValidation(ctx context.Context, ref domain.FormRef, index int, minLength, maxLength *int, required bool) error {
	return s.updateField(ctx, ref, index, func(field *domain.FormField) error {
		field.SetValidation(minLength, maxLength, required)
		return nil
	})
}

// SetFieldInline replaces a field's inline rendering flag.
func (s *FormService) SetFieldInline(ctx context.Context, ref domain.FormRef, index int, inline bool) error {
	return s.updateField(ctx, ref, index, func(field *domain.FormField) error {
		field.Inline = inline
		return nil
	})
}

// ClearCooldown removes a user's cooldown entry for a form, reporting
// whether one existed.
func (s *FormService) ClearCooldown(ctx context.Context, ref domain.FormRef, user domain.UserID) (bool, error) {
	cleared, err := s.cooldowns.Clear(ctx, ref, user)
	if err != nil {
		return false, fmt.Errorf("failed to clear cooldown: %w", err)
	}
	return cleared, nil
}
