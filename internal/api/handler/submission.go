package handler

import (
	"encoding/json"
	"net/http"

	"github.com/formgate/formgate/internal/api/response"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SubmissionHandler exposes the submission pipeline: trigger a prompt,
// then complete or abandon it. The caller is the platform gateway
// acting on behalf of an end user, so the acting user travels in the
// request body rather than in the token.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// sessionIDFromRequest resolves the prompt session path parameter.
func sessionIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "session"))
	if err != nil {
		response.BadRequest(w, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

type triggerInput struct {
	User string `json:"user" validate:"required"`
}

// Trigger handles a user pressing a form's button. On success it
// opens a prompt session and returns the prompt to render.
func (h *SubmissionHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	ref, ok := formRefFromRequest(w, r)
	if !ok {
		return
	}

	var input triggerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.submissionService.Trigger(r.Context(), ref, domain.UserID(input.User))
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.Created(w, result)
}

type submitInput struct {
	User        string   `json:"user" validate:"required"`
	DisplayName string   `json:"display_name"`
	Answers     []string `json:"answers" validate:"required"`
}

// Submit handles completing a prompt session with the user's answers.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	var input submitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.submissionService.Submit(r.Context(), sessionID, domain.UserID(input.User), input.DisplayName, input.Answers)
	if err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.OK(w, result)
}

type cancelInput struct {
	User string `json:"user" validate:"required"`
}

// Cancel handles a user abandoning a prompt session. Cancelling an
// already-expired session succeeds.
func (h *SubmissionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromRequest(w, r)
	if !ok {
		return
	}

	var input cancelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.submissionService.Cancel(r.Context(), sessionID, domain.UserID(input.User)); err != nil {
		response.FromDomainError(w, err)
		return
	}

	response.NoContent(w)
}
