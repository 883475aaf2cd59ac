package domain

import (
	"fmt"
)

const (
	// MaxFieldNameLength caps field display labels.
	MaxFieldNameLength = 45
	// MaxPlaceholderLength caps field placeholder text.
	MaxPlaceholderLength = 100
	// MaxAnswerLength is the platform cap on a single answer.
	MaxAnswerLength = 1024
)

// FieldStyle selects how a prompt line is rendered.
type FieldStyle string

const (
	StyleShort     FieldStyle = "short"
	StyleParagraph FieldStyle = "paragraph"
)

// ParseFieldStyle parses a field style from its wire form.
func ParseFieldStyle(s string) (FieldStyle, error) {
	switch FieldStyle(s) {
	case StyleShort, StyleParagraph:
		return FieldStyle(s), nil
	}
	return "", fmt.Errorf("unknown field style %q", s)
}

// FormField is one prompt line of a form. Name and placeholder lengths
// are validated by the constructor and setters, independent of the
// owning form's validations.
type FormField struct {
	Name        string     `json:"name"`
	Style       FieldStyle `json:"style"`
	Placeholder string     `json:"placeholder,omitempty"`
	MinLength   *int       `json:"min_length,omitempty"`
	MaxLength   *int       `json:"max_length,omitempty"`
	Required    bool       `json:"required"`
	Inline      bool       `json:"inline"`
}

// NewFormField creates a field with the given label and style.
// Fields are required by default and rendered as blocks.
func NewFormField(name string, style FieldStyle) (FormField, error) {
	if len(name) > MaxFieldNameLength {
		return FormField{}, &ValueTooLongError{Attribute: "field name", Limit: MaxFieldNameLength}
	}
	return FormField{
		Name:     name,
		Style:    style,
		Required: true,
	}, nil
}

// SetName replaces the field's display label.
func (f *FormField) SetName(name string) error {
	if len(name) > MaxFieldNameLength {
		return &ValueTooLongError{Attribute: "field name", Limit: MaxFieldNameLength}
	}
	f.Name = name
	return nil
}

// SetPlaceholder replaces the placeholder text. An empty string clears it.
func (f *FormField) SetPlaceholder(placeholder string) error {
	if len(placeholder) > MaxPlaceholderLength {
		return &ValueTooLongError{Attribute: "placeholder", Limit: MaxPlaceholderLength}
	}
	f.Placeholder = placeholder
	return nil
}

// SetValidation replaces the length bounds and required flag. The
// min/max relationship is not cross-checked here; the prompting layer
// owns that validation.
func (f *FormField) SetValidation(minLength, maxLength *int, required bool) {
	f.MinLength = minLength
	f.MaxLength = maxLength
	f.Required = required
}
