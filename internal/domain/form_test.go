package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createForm(t *testing.T) *Form {
	t.Helper()

	form, err := NewForm("My Title", ChannelID("123"))
	require.NoError(t, err)

	for _, name := range []string{"Field 0", "Field 1", "Field 2", "Field 3", "Field 4"} {
		field, err := NewFormField(name, StyleShort)
		require.NoError(t, err)
		require.NoError(t, form.AddField(field, nil))
	}

	return form
}

func fieldNames(form *Form) []string {
	names := make([]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		names = append(names, f.Name)
	}
	return names
}

func TestMoveFieldBackward(t *testing.T) {
	form := createForm(t)

	moved, err := form.MoveField(4, 0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"Field 4", "Field 0", "Field 1", "Field 2", "Field 3"}, fieldNames(form))
}

func TestMoveFieldForward(t *testing.T) {
	form := createForm(t)

	moved, err := form.MoveField(0, 4)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"Field 1", "Field 2", "Field 3", "Field 4", "Field 0"}, fieldNames(form))
}

func TestMoveFieldSamePosition(t *testing.T) {
	form := createForm(t)

	moved, err := form.MoveField(2, 2)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"Field 0", "Field 1", "Field 2", "Field 3", "Field 4"}, fieldNames(form))
}

func TestMoveFieldTooFar(t *testing.T) {
	form := createForm(t)

	_, err := form.MoveField(0, 10)
	assert.ErrorIs(t, err, ErrIllegalAddBefore)
}

func TestMoveFieldUnknownIndex(t *testing.T) {
	form := createForm(t)

	moved, err := form.MoveField(10, 0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"Field 0", "Field 1", "Field 2", "Field 3", "Field 4"}, fieldNames(form))
}

func TestAddFieldCapacity(t *testing.T) {
	form := createForm(t)
	before := fieldNames(form)

	field, err := NewFormField("Field 5", StyleShort)
	require.NoError(t, err)

	err = form.AddField(field, nil)
	assert.ErrorIs(t, err, ErrTooManyFields)
	assert.Equal(t, before, fieldNames(form))
}

func TestAddFieldInsertBefore(t *testing.T) {
	form, err := NewForm("My Title", ChannelID("123"))
	require.NoError(t, err)

	first, err := NewFormField("First", StyleShort)
	require.NoError(t, err)
	require.NoError(t, form.AddField(first, nil))

	second, err := NewFormField("Second", StyleParagraph)
	require.NoError(t, err)
	zero := 0
	require.NoError(t, form.AddField(second, &zero))
	assert.Equal(t, []string{"Second", "First"}, fieldNames(form))

	// insert position equal to the count appends
	last, err := NewFormField("Last", StyleShort)
	require.NoError(t, err)
	count := len(form.Fields)
	require.NoError(t, form.AddField(last, &count))
	assert.Equal(t, []string{"Second", "First", "Last"}, fieldNames(form))

	beyond := len(form.Fields) + 1
	extra, err := NewFormField("Extra", StyleShort)
	require.NoError(t, err)
	assert.ErrorIs(t, form.AddField(extra, &beyond), ErrIllegalAddBefore)
}

func TestRemoveField(t *testing.T) {
	form := createForm(t)

	assert.True(t, form.RemoveField(2))
	assert.Equal(t, []string{"Field 0", "Field 1", "Field 3", "Field 4"}, fieldNames(form))

	before := fieldNames(form)
	assert.False(t, form.RemoveField(9))
	assert.False(t, form.RemoveField(-1))
	assert.Equal(t, before, fieldNames(form))
}

func TestTitleAndDescriptionLimits(t *testing.T) {
	_, err := NewForm(strings.Repeat("x", MaxTitleLength+1), ChannelID("123"))
	var tooLong *ValueTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Equal(t, MaxTitleLength, tooLong.Limit)

	form, err := NewForm("ok", ChannelID("123"))
	require.NoError(t, err)

	assert.Error(t, form.SetTitle(strings.Repeat("x", MaxTitleLength+1)))
	assert.Error(t, form.SetDescription(strings.Repeat("x", MaxDescriptionLength+1)))
	assert.NoError(t, form.SetDescription(""))
}

func TestFieldLimits(t *testing.T) {
	_, err := NewFormField(strings.Repeat("x", MaxFieldNameLength+1), StyleShort)
	assert.Error(t, err)

	field, err := NewFormField("ok", StyleShort)
	require.NoError(t, err)
	assert.True(t, field.Required)
	assert.False(t, field.Inline)

	assert.Error(t, field.SetPlaceholder(strings.Repeat("x", MaxPlaceholderLength+1)))
	assert.NoError(t, field.SetPlaceholder("hint"))
	assert.NoError(t, field.SetPlaceholder(""))
	assert.Empty(t, field.Placeholder)
}

func TestSetCooldownNormalization(t *testing.T) {
	form, err := NewForm("ok", ChannelID("123"))
	require.NoError(t, err)

	form.SetCooldown(90 * time.Second)
	assert.Equal(t, 90*time.Second, form.Cooldown)

	// sub-second durations round down to none
	form.SetCooldown(500 * time.Millisecond)
	assert.Zero(t, form.Cooldown)

	form.SetCooldown(-time.Minute)
	assert.Zero(t, form.Cooldown)

	form.SetCooldown(90*time.Second + 300*time.Millisecond)
	assert.Equal(t, 90*time.Second, form.Cooldown)
}

func TestPromptEmptyForm(t *testing.T) {
	form, err := NewForm("ok", ChannelID("123"))
	require.NoError(t, err)
	assert.Nil(t, form.Prompt())
}

func TestPromptMirrorsFields(t *testing.T) {
	form := createForm(t)
	min := 3
	max := 200
	form.Fields[1].Style = StyleParagraph
	form.Fields[1].MinLength = &min
	form.Fields[1].MaxLength = &max
	form.Fields[1].Required = false
	require.NoError(t, form.Fields[1].SetPlaceholder("hint"))

	prompt := form.Prompt()
	require.NotNil(t, prompt)
	assert.Equal(t, "My Title", prompt.Title)
	assert.Equal(t, 600, prompt.TimeoutSeconds)
	require.Len(t, prompt.Inputs, 5)

	assert.Equal(t, "Field 0", prompt.Inputs[0].Label)
	assert.Equal(t, StyleShort, prompt.Inputs[0].Style)
	assert.Equal(t, MaxAnswerLength, prompt.Inputs[0].MaxLength)
	assert.True(t, prompt.Inputs[0].Required)

	assert.Equal(t, StyleParagraph, prompt.Inputs[1].Style)
	assert.Equal(t, "hint", prompt.Inputs[1].Placeholder)
	require.NotNil(t, prompt.Inputs[1].MinLength)
	assert.Equal(t, 3, *prompt.Inputs[1].MinLength)
	assert.Equal(t, 200, prompt.Inputs[1].MaxLength)
	assert.False(t, prompt.Inputs[1].Required)
}

func TestFormRoundTrip(t *testing.T) {
	form := createForm(t)
	require.NoError(t, form.SetDescription("What brings you here?"))
	form.SetCooldown(5 * time.Minute)
	mention := RoleMention(RoleID("42"))
	form.Mention = &mention
	min := 1
	form.Fields[3].MinLength = &min
	form.Fields[3].Inline = true

	data, err := json.Marshal(form)
	require.NoError(t, err)

	var decoded Form
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *form, decoded)
}

func TestComposeResult(t *testing.T) {
	form := createForm(t)
	require.NoError(t, form.SetDescription("Intro text"))
	mention := UserMention(UserID("7"))
	form.Mention = &mention
	form.Fields[0].Inline = true

	now := time.Now()
	answers := []string{"a0", "a1", "a2", "a3", "a4"}
	msg := form.ComposeResult("alice", UserID("7"), answers, now)

	assert.Equal(t, "<@7>\nIntro text", msg.Content)
	assert.Equal(t, "My Title", msg.Title)
	assert.Equal(t, "alice", msg.AuthorName)
	require.Len(t, msg.Fields, 5)
	assert.Equal(t, MessageField{Name: "Field 0", Value: "a0", Inline: true}, msg.Fields[0])
	assert.Equal(t, MessageField{Name: "Field 4", Value: "a4", Inline: false}, msg.Fields[4])

	// mention only, trailing newline trimmed
	require.NoError(t, form.SetDescription(""))
	msg = form.ComposeResult("alice", UserID("7"), answers, now)
	assert.Equal(t, "<@7>", msg.Content)
}
