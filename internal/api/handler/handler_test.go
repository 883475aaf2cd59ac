package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formgate/formgate/internal/api/handler"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.NewHealthHandler().Check(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, true, response["success"])

	data, ok := response["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
}

func TestFormHandler_Create_RequiresToken(t *testing.T) {
	body, _ := json.Marshal(map[string]string{
		"title":       "Bug report",
		"destination": "chan-1",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workspaces/ws-1/forms", bytes.NewReader(body))
	req = withURLParams(req, map[string]string{"workspace": "ws-1"})
	rec := httptest.NewRecorder()

	handler.NewFormHandler(nil).Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmissionHandler_Submit_InvalidSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions/not-a-uuid", nil)
	req = withURLParams(req, map[string]string{"session": "not-a-uuid"})
	rec := httptest.NewRecorder()

	handler.NewSubmissionHandler(nil).Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// withURLParams attaches chi route parameters to a request built with
// httptest, which bypasses the router.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
