package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/api/response"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FormHandler exposes the admin command surface for forms. Each
// endpoint maps 1:1 onto a form service operation.
type FormHandler struct {
	formService *service.FormService
}

// NewFormHandler creates a new form handler.
func NewFormHandler(formService *service.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// workspaceFromRequest resolves the workspace path parameter and
// checks it against the token's workspace scope.
func workspaceFromRequest(w http.ResponseWriter, r *http.Request) (domain.WorkspaceID, bool) {
	workspace := chi.URLParam(r, "workspace")
	if workspace == "" {
		response.BadRequest(w, "missing workspace")
		return "", false
	}

	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return "", false
	}
	if !claims.AllowsWorkspace(workspace) {
		response.Forbidden(w, "token does not grant access to this workspace")
		return "", false
	}

	return domain.WorkspaceID(workspace), true
}

// formRefFromRequest resolves the workspace and form path parameters.
func formRefFromRequest(w http.ResponseWriter, r *http.Request) (domain.FormRef, bool) {
	workspace, ok := workspaceFromRequest(w, r)
	if !ok {
		return domain.FormRef{}, false
	}

	id, err := domain.ParseFormID(chi.URLParam(r, "form"))
	if err != nil {
		response.BadRequest(w, "invalid form id")
		return domain.FormRef{}, false
	}

	return domain.FormRef{Workspace: workspace, Form: id}, true
}

// fieldIndexFromRequest resolves the field index path parameter.
func fieldIndexFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		response.BadRequest(w, "invalid field index")
		return 0, false
	}
	return index, true
}

// parseCooldown parses an optional duration string. Empty means no
// cooldown.
func parseCooldown(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

type mentionInput struct {
	Kind string `json:"kind" validate:"required,oneof=role user"`
	ID   string `json:"id" validate:"required"`
}

func (in *mentionInput) toDomain() *domain.Mention {
	if in == nil {
		return nil
	}
	if in.Kind == string(domain.MentionRole) {
		m := domain.RoleMention(domain.RoleID(in.ID))
		return &m
	}
	m := domain.UserMention(domain.UserID(in.ID))
	return &m
}

type createFormInput struct {
	Title       string        `json:"title" validate:"required,max=256"`
	Description string        `json:"description" validate:"max=4096"`
	Destination string        `json:"destination" validate:"required"`
	Mention     *mentionInput `json:"mention"`
	Cooldown    string        `json:"cooldown"`
}

// Create handles form creation.
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	workspace, ok := workspaceFromRequest(w, r)
	if !ok {
		return
	}

	var input createFormInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	cooldown, err := parseCooldown(input.Cooldown)
	if err != nil {
		response.BadRequest(w, "cooldown was not formatted correctly")
		return
	}

	form, err := h.formService.Create(r.Context(), workspace,
		input.Title, input.Description,
		domain.ChannelID(input.Destination),
		input.Mention.toDomain(), cooldown,
	)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.Created(w, form)
}

// List handles listing a workspace's forms as (id, title) pairs.
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	workspace, ok := workspaceFromRequest(w, r)
	if !ok {
		return
	}

	summaries, err := h.formService.List(r.Context(), workspace)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.OK(w, summaries)
}

// Get handles fetching a form's details.
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	form, err := h.formService.Get(r.Context(), ref)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.OK(w, form)
}

// Delete handles form deletion.
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.formService.Delete(r.Context(), ref); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type renameInput struct {
	Title string `json:"title" validate:"required,max=256"`
}

// Rename handles replacing a form's title.
func (h *FormHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input renameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.Rename(r.Context(), ref, input.Title); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type descriptionInput struct {
	Description string `json:"description" validate:"max=4096"`
}

// SetDescription handles replacing a form's description. An empty
// description clears it.
func (h *FormHandler) SetDescription(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input descriptionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.SetDescription(r.Context(), ref, input.Description); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type cooldownInput struct {
	Cooldown string `json:"cooldown"`
}

// SetCooldown handles replacing a form's cooldown. An empty or zero
// duration clears it.
func (h *FormHandler) SetCooldown(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input cooldownInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	cooldown, err := parseCooldown(input.Cooldown)
	if err != nil {
		response.BadRequest(w, "cooldown was not formatted correctly")
		return
	}

	if err := h.formService.SetCooldown(r.Context(), ref, cooldown); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type setMentionInput struct {
	Mention *mentionInput `json:"mention"`
}

// SetMention handles replacing who is mentioned on submission. A null
// mention clears it.
func (h *FormHandler) SetMention(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input setMentionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if input.Mention != nil {
		if err := validate.Struct(input.Mention); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	if err := h.formService.SetMention(r.Context(), ref, input.Mention.toDomain()); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

type destinationInput struct {
	Destination string `json:"destination" validate:"required"`
}

// SetDestination handles moving a form to another destination channel.
func (h *FormHandler) SetDestination(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input destinationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.formService.SetDestination(r.Context(), ref, domain.ChannelID(input.Destination)); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}

// ClearCooldown handles removing a user's cooldown entry for a form.
func (h *FormHandler) ClearCooldown(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	user := domain.UserID(chi.URLParam(r, "user"))
	if user == "" {
		response.BadRequest(w, "missing user")
		return
	}

	cleared, err := h.formService.ClearCooldown(r.Context(), ref, user)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.OK(w, map[string]bool{"cleared": cleared})
}
