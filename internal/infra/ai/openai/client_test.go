package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/rcis/internal/domain/ai"
)

func TestNarrate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Check crimp dies on batch 003.  "},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", "gpt-4o-mini", srv.URL+"/v1")
	out, err := c.Narrate(context.Background(), "- [batch/medium] Crimp Issue spike after BATCH-2026-003 (60%)")
	require.NoError(t, err)
	assert.Equal(t, "Check crimp dies on batch 003.", out)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.EqualValues(t, maxTokens, got["max_tokens"])
}

func TestNarrateQuota(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota","type":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", "gpt-4o-mini", srv.URL+"/v1")
	_, err := c.Narrate(context.Background(), "x")
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}

func TestIsReasoningModel(t *testing.T) {
	assert.True(t, isReasoningModel("o3-mini"))
	assert.True(t, isReasoningModel("gpt-5"))
	assert.False(t, isReasoningModel("gpt-4o-mini"))
}
