package handler

import (
	"encoding/json"
	"net/http"

	"github.com/formgate/formgate/internal/api/response"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/service"
)

// FieldHandler exposes the per-field command surface of a form.
type FieldHandler struct {
	formService *service.FormService
}

// NewFieldHandler creates a new field handler.
func NewFieldHandler(formService *service.FormService) *FieldHandler {
	return &FieldHandler{formService: formService}
}

type addFieldInput struct {
	Name         string `json:"name" validate:"required,max=45"`
	Style        string `json:"style" validate:"required,oneof=short paragraph"`
	Placeholder  string `json:"placeholder" validate:"max=100"`
	MinLength    *int   `json:"min_length" validate:"omitempty,min=0,max=1024"`
	MaxLength    *int   `json:"max_length" validate:"omitempty,min=0,max=1024"`
	Required     *bool  `json:"required"`
	Inline       bool   `json:"inline"`
	InsertBefore *int   `json:"insert_before" validate:"omitempty,min=0"`
}

// Add handles appending or inserting a field into a form.
func (h *FieldHandler) Add(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input addFieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	style, err := domain.ParseFieldStyle(input.Style)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	field, err := domain.NewFormField(input.Name, style)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}
	if input.Placeholder != "" {
		if err := field.SetPlaceholder(input.Placeholder); err != nil {
			response.FromDomainError(w, err)
			return
		}
	}
	required := true
	if input.Required != nil {
		required = *input.Required
	}
	field.SetValidation(input.MinLength, input.MaxLength, required)
	field.Inline = input.Inline

	if err := h.formService.AddField(r.Context(), ref, field, input.InsertBefore); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.Created(w, field)
}

// Remove handles deleting a field by index.
func (h *FieldHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.formService.RemoveField(r.Context(), ref, index); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type moveFieldInput struct {
	Destination int `json:"destination" validate:"min=0"`
}

// Move handles repositioning a field. The destination index is
// evaluated after the field has been lifted out of the list.
func (h *FieldHandler) Move(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input moveFieldInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.MoveField(r.Context(), ref, index, input.Destination); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type fieldNameInput struct {
	Name string `json:"name" validate:"required,max=45"`
}

// Rename handles replacing a field's name.
func (h *FieldHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input fieldNameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.RenameField(r.Context(), ref, index, input.Name); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type fieldStyleInput struct {
	Style string `json:"style" validate:"required,oneof=short paragraph"`
}

// SetStyle handles switching a field between short and paragraph input.
func (h *FieldHandler) SetStyle(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input fieldStyleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	style, err := domain.ParseFieldStyle(input.Style)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.SetFieldStyle(r.Context(), ref, index, style); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type fieldPlaceholderInput struct {
	Placeholder string `json:"placeholder" validate:"max=100"`
}

// SetPlaceholder handles replacing a field's placeholder text. An
// empty placeholder clears it.
func (h *FieldHandler) SetPlaceholder(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input fieldPlaceholderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.SetFieldPlaceholder(r.Context(), ref, index, input.Placeholder); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type fieldValidationInput struct {
	MinLength *int  `json:"min_length" validate:"omitempty,min=0,max=1024"`
	MaxLength *int  `json:"max_length" validate:"omitempty,min=0,max=1024"`
	Required  *bool `json:"required"`
}

// SetValidation handles replacing a field's answer constraints.
func (h *FieldHandler) SetValidation(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input fieldValidationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	// Fields stay required unless the caller says otherwise.
	required := true
	if input.Required != nil {
		required = *input.Required
	}

	if err := h.formService.SetFieldValidation(r.Context(), ref, index, input.MinLength, input.MaxLength, required); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type fieldInlineInput struct {
	Inline bool `json:"inline"`
}

// SetInline handles toggling whether a field renders inline in the
// published result.
func (h *FieldHandler) SetInline(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}
	index, ok := fieldIndexFromRequest(w, r)
	if !ok {
		return
	}

	var input fieldInlineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.formService.SetFieldInline(r.Context(), ref, index, input.Inline); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}
