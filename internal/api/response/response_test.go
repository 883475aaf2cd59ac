package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/formgate/formgate/internal/api/response"
	"github.com/formgate/formgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryAfterFor(t *testing.T, remaining time.Duration) float64 {
	t.Helper()

	rec := httptest.NewRecorder()
	response.FromDomainError(rec, &domain.CooldownError{Remaining: remaining})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp struct {
		Error struct {
			RetryAfterSeconds float64 `json:"retry_after_seconds"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error.RetryAfterSeconds
}

func TestFromDomainError_CooldownRetryAfterRoundsUp(t *testing.T) {
	// A sub-second remainder must not read as "retry now".
	assert.Equal(t, float64(1), retryAfterFor(t, 300*time.Millisecond))
	assert.Equal(t, float64(3), retryAfterFor(t, 2*time.Second+500*time.Millisecond))
	assert.Equal(t, float64(5), retryAfterFor(t, 5*time.Second))
}
