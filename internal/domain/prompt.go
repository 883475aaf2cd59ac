package domain

import (
	"time"
)

// PromptTimeout bounds the single suspension point of the submission
// pipeline: how long a presented prompt waits for a submission.
const PromptTimeout = 600 * time.Second

// PromptInput is one line of a prompt, mirroring its field.
type PromptInput struct {
	Label       string     `json:"label"`
	Style       FieldStyle `json:"style"`
	Placeholder string     `json:"placeholder,omitempty"`
	MinLength   *int       `json:"min_length,omitempty"`
	MaxLength   int        `json:"max_length"`
	Required    bool       `json:"required"`
}

// PromptSpec describes the interactive multi-field prompt shown to a
// submitting user.
type PromptSpec struct {
	Title          string        `json:"title"`
	TimeoutSeconds int           `json:"timeout_seconds"`
	Inputs         []PromptInput `json:"inputs"`
}

// Prompt builds the prompt specification for this form, in field
// order. A form with no fields cannot be shown and yields nil.
func (f *Form) Prompt() *PromptSpec {
	if len(f.Fields) == 0 {
		return nil
	}

	inputs := make([]PromptInput, 0, len(f.Fields))
	for _, field := range f.Fields {
		maxLength := MaxAnswerLength
		if field.MaxLength != nil {
			maxLength = *field.MaxLength
		}
		inputs = append(inputs, PromptInput{
			Label:       field.Name,
			Style:       field.Style,
			Placeholder: field.Placeholder,
			MinLength:   field.MinLength,
			MaxLength:   maxLength,
			Required:    field.Required,
		})
	}

	return &PromptSpec{
		Title:          f.Title,
		TimeoutSeconds: int(PromptTimeout / time.Second),
		Inputs:         inputs,
	}
}
