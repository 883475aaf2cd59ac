package handler

import (
	"net/http"

	"github.com/formgate/formgate/internal/api/response"
)

// HealthHandler reports liveness.
type HealthHandler struct{}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles health check requests.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "healthy"})
}
