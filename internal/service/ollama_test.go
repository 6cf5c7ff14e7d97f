package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimilab/backend/internal/logger"
)

// newOllamaStub serves the tags and generate endpoints the provider uses.
// The generate handler streams the given fragments as NDJSON chunks.
func newOllamaStub(t *testing.T, fragments []string, tagCalls *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		if tagCalls != nil {
			atomic.AddInt32(tagCalls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"models":[{"name":"llama3.2:latest"},{"name":"mistral:7b"}]}`)
	})
	mux.HandleFunc("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		for i, fragment := range fragments {
			done := i == len(fragments)-1
			fmt.Fprintf(w, `{"response":%q,"done":%v}`+"\n", fragment, done)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestOllamaAvailableCachesResult(t *testing.T) {
	var tagCalls int32
	server := newOllamaStub(t, nil, &tagCalls)

	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	current := time.Now()
	provider.now = func() time.Time { return current }

	ctx := context.Background()
	assert.True(t, provider.Available(ctx))
	assert.True(t, provider.Available(ctx))
	assert.True(t, provider.Available(ctx))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tagCalls), "probes within the TTL must hit the cache")

	// past the TTL the next call probes again
	current = current.Add(availabilityTTL + time.Second)
	assert.True(t, provider.Available(ctx))
	assert.Equal(t, int32(2), atomic.LoadInt32(&tagCalls))
}

func TestOllamaAvailableServerDown(t *testing.T) {
	server := newOllamaStub(t, nil, nil)
	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	current := time.Now()
	provider.now = func() time.Time { return current }

	ctx := context.Background()
	require.True(t, provider.Available(ctx))

	server.Close()

	// cached result survives the outage until the TTL expires
	assert.True(t, provider.Available(ctx))

	current = current.Add(availabilityTTL + time.Second)
	assert.False(t, provider.Available(ctx))
}

func TestOllamaExplainElementAccumulatesStream(t *testing.T) {
	server := newOllamaStub(t, []string{"El sodio ", "es un metal ", "alcalino muy reactivo."}, nil)
	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	text, err := provider.ExplainElement(context.Background(), sodiumElement(), LevelBasic)
	require.NoError(t, err)
	assert.Equal(t, "El sodio es un metal alcalino muy reactivo.", text)
}

func TestOllamaExplainReactionAccumulatesStream(t *testing.T) {
	server := newOllamaStub(t, []string{"La síntesis de NaCl ", "libera mucha energía."}, nil)
	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	text, err := provider.ExplainReaction(context.Background(), saltFormationReaction(), LevelAdvanced)
	require.NoError(t, err)
	assert.Equal(t, "La síntesis de NaCl libera mucha energía.", text)
}

func TestOllamaGenerateEmptyStreamErrors(t *testing.T) {
	server := newOllamaStub(t, []string{""}, nil)
	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	_, err := provider.ExplainElement(context.Background(), sodiumElement(), LevelBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	provider := NewOllamaProvider(server.URL, "missing:model", time.Second, logger.NewNop())

	_, err := provider.ExplainElement(context.Background(), sodiumElement(), LevelBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestOllamaModels(t *testing.T) {
	server := newOllamaStub(t, nil, nil)
	provider := NewOllamaProvider(server.URL, "llama3.2:latest", time.Second, logger.NewNop())

	models := provider.Models(context.Background())
	assert.Equal(t, []string{"llama3.2:latest", "mistral:7b"}, models)
}

func TestOllamaName(t *testing.T) {
	assert.Equal(t, SourceOllama, NewOllamaProvider("http://localhost:11434", "llama3.2:latest", time.Second, logger.NewNop()).Name())
}
