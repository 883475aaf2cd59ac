package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formgate/formgate/internal/api/handler"
	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/domain"
	"github.com/formgate/formgate/internal/security"
	"github.com/formgate/formgate/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFormStore holds a single form and records the last save.
type fakeFormStore struct {
	form  *domain.Form
	saved *domain.Form
}

func (s *fakeFormStore) Get(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (*domain.Form, error) {
	if s.form == nil || s.form.ID != id {
		return nil, nil
	}
	copied := *s.form
	return &copied, nil
}

func (s *fakeFormStore) Save(ctx context.Context, workspace domain.WorkspaceID, form *domain.Form) error {
	s.saved = form
	return nil
}

func (s *fakeFormStore) Delete(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (bool, error) {
	return false, nil
}

func (s *fakeFormStore) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	return nil, nil
}

func TestFieldHandler_SetValidation_OmittedRequiredDefaultsToTrue(t *testing.T) {
	form, err := domain.NewForm("Bug report", "chan-1")
	require.NoError(t, err)
	field, err := domain.NewFormField("Summary", domain.StyleShort)
	require.NoError(t, err)
	field.SetValidation(nil, nil, false)
	require.NoError(t, form.AddField(field, nil))

	store := &fakeFormStore{form: form}
	h := handler.NewFieldHandler(service.NewFormService(store, nil, nil))

	body, _ := json.Marshal(map[string]int{"min_length": 2, "max_length": 100})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/workspaces/ws-1/forms/"+form.ID.String()+"/fields/0/validation", bytes.NewReader(body))
	req = withURLParams(req, map[string]string{
		"workspace": "ws-1",
		"form":      form.ID.String(),
		"index":     "0",
	})
	req = req.WithContext(middleware.WithClaims(req.Context(), &security.Claims{ActorID: "gateway"}))
	rec := httptest.NewRecorder()

	h.SetValidation(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, store.saved)
	saved := store.saved.Fields[0]
	assert.True(t, saved.Required, "omitted required flag must leave the field required")
	require.NotNil(t, saved.MinLength)
	assert.Equal(t, 2, *saved.MinLength)
	require.NotNil(t, saved.MaxLength)
	assert.Equal(t, 100, *saved.MaxLength)
}

func TestFieldHandler_SetValidation_ExplicitFalseClearsRequired(t *testing.T) {
	form, err := domain.NewForm("Bug report", "chan-1")
	require.NoError(t, err)
	field, err := domain.NewFormField("Summary", domain.StyleShort)
	require.NoError(t, err)
	require.NoError(t, form.AddField(field, nil))

	store := &fakeFormStore{form: form}
	h := handler.NewFieldHandler(service.NewFormService(store, nil, nil))

	body, _ := json.Marshal(map[string]any{"required": false})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/workspaces/ws-1/forms/"+form.ID.String()+"/fields/0/validation", bytes.NewReader(body))
	req = withURLParams(req, map[string]string{
		"workspace": "ws-1",
		"form":      form.ID.String(),
		"index":     "0",
	})
	req = req.WithContext(middleware.WithClaims(req.Context(), &security.Claims{ActorID: "gateway"}))
	rec := httptest.NewRecorder()

	h.SetValidation(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, store.saved)
	assert.False(t, store.saved.Fields[0].Required)
}
