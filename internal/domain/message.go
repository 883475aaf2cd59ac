package domain

import (
	"strings"
	"time"
)

// MessageField is one labeled answer in a published result.
type MessageField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// ComposedMessage is the published result of a submission: an optional
// mention/description line followed by each field's label and answer
// in original field order.
type ComposedMessage struct {
	Content    string         `json:"content,omitempty"`
	Title      string         `json:"title"`
	AuthorName string         `json:"author_name"`
	AuthorID   UserID         `json:"author_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Fields     []MessageField `json:"fields"`
}

// ComposeResult builds the message published for a submission. Answers
// are paired with fields positionally.
func (f *Form) ComposeResult(authorName string, authorID UserID, answers []string, now time.Time) ComposedMessage {
	var content strings.Builder
	if f.Mention != nil {
		content.WriteString(f.Mention.String())
		content.WriteString("\n")
	}
	if f.Description != "" {
		content.WriteString(f.Description)
	}

	fields := make([]MessageField, 0, len(f.Fields))
	for i, field := range f.Fields {
		value := ""
		if i < len(answers) {
			value = answers[i]
		}
		fields = append(fields, MessageField{
			Name:   field.Name,
			Value:  value,
			Inline: field.Inline,
		})
	}

	return ComposedMessage{
		Content:    strings.TrimRight(content.String(), "\n"),
		Title:      f.Title,
		AuthorName: authorName,
		AuthorID:   authorID,
		Timestamp:  now,
		Fields:     fields,
	}
}
