package domain

import (
	"time"
)

const (
	// MaxTitleLength caps form titles.
	MaxTitleLength = 256
	// MaxDescriptionLength caps form descriptions.
	MaxDescriptionLength = 4096
	// MaxFields caps the number of fields per form.
	MaxFields = 5
)

// Form is the aggregate root: an ordered set of input fields plus
// destination, mention and cooldown settings. All durable mutations go
// through a read-modify-write against the form store; the later save
// wins.
type Form struct {
	ID          FormID        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Fields      []FormField   `json:"fields"`
	Destination ChannelID     `json:"destination"`
	Mention     *Mention      `json:"mention,omitempty"`
	Cooldown    time.Duration `json:"cooldown,omitempty"`
}

// NewForm creates a form with a fresh id, the given title and
// destination channel, and no fields.
func NewForm(title string, destination ChannelID) (*Form, error) {
	if len(title) > MaxTitleLength {
		return nil, &ValueTooLongError{Attribute: "title", Limit: MaxTitleLength}
	}
	return &Form{
		ID:          NewFormID(),
		Title:       title,
		Destination: destination,
	}, nil
}

// SetTitle replaces the form title.
func (f *Form) SetTitle(title string) error {
	if len(title) > MaxTitleLength {
		return &ValueTooLongError{Attribute: "title", Limit: MaxTitleLength}
	}
	f.Title = title
	return nil
}

// SetDescription replaces the description prefixed to every published
// result. An empty string clears it.
func (f *Form) SetDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return &ValueTooLongError{Attribute: "description", Limit: MaxDescriptionLength}
	}
	f.Description = description
	return nil
}

// SetCooldown replaces the per-user submission interval. Durations are
// truncated to whole seconds; zero and negative values mean no
// cooldown.
func (f *Form) SetCooldown(cooldown time.Duration) {
	cooldown = cooldown.Truncate(time.Second)
	if cooldown < 0 {
		cooldown = 0
	}
	f.Cooldown = cooldown
}

// AddField appends a field, or inserts it before the given position.
// A position equal to the current field count appends.
func (f *Form) AddField(field FormField, insertBefore *int) error {
	if len(f.Fields) >= MaxFields {
		return ErrTooManyFields
	}

	if insertBefore == nil {
		f.Fields = append(f.Fields, field)
		return nil
	}

	i := *insertBefore
	if i < 0 || i > len(f.Fields) {
		return ErrIllegalAddBefore
	}

	f.Fields = append(f.Fields, FormField{})
	copy(f.Fields[i+1:], f.Fields[i:])
	f.Fields[i] = field
	return nil
}

// RemoveField removes the field at index. An out-of-bounds index is a
// no-op reported as false, not an error.
func (f *Form) RemoveField(index int) bool {
	if index < 0 || index >= len(f.Fields) {
		return false
	}
	f.Fields = append(f.Fields[:index], f.Fields[index+1:]...)
	return true
}

// MoveField removes the field at index and reinserts it so it ends up
// at the destination position of the resulting sequence. Destination
// positions are evaluated against the post-removal sequence. Returns
// false when index is out of bounds; moving a field onto its own
// position succeeds without effect.
func (f *Form) MoveField(index, destination int) (bool, error) {
	if index < 0 || index >= len(f.Fields) {
		return false, nil
	}
	if destination < 0 || destination >= len(f.Fields) {
		return false, ErrIllegalAddBefore
	}

	field := f.Fields[index]
	f.Fields = append(f.Fields[:index], f.Fields[index+1:]...)
	if err := f.AddField(field, &destination); err != nil {
		return false, err
	}
	return true, nil
}

// Field returns a pointer to the field at index for in-place mutation.
func (f *Form) Field(index int) (*FormField, bool) {
	if index < 0 || index >= len(f.Fields) {
		return nil, false
	}
	return &f.Fields[index], true
}

// Ref addresses this form within the given workspace.
func (f *Form) Ref(workspace WorkspaceID) FormRef {
	return FormRef{Workspace: workspace, Form: f.ID}
}
