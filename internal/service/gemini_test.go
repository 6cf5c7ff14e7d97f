package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimilab/backend/internal/logger"
)

func geminiTextResponse(text string) string {
	payload := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			},
			"finishReason": "STOP",
		}},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

// newGeminiStub answers generateContent for the models in answers; any
// other model gets a 404.
func newGeminiStub(t *testing.T, answers map[string]string) (*httptest.Server, *[]string) {
	t.Helper()

	var requestedModels []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// path looks like /<model>:generateContent
		model := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ":generateContent")
		requestedModels = append(requestedModels, model)

		if r.Header.Get("x-goog-api-key") == "" {
			http.Error(w, "missing key", http.StatusUnauthorized)
			return
		}

		text, ok := answers[model]
		if !ok {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, geminiTextResponse(text))
	}))
	t.Cleanup(server.Close)
	return server, &requestedModels
}

func newGeminiProviderForTest(apiKey, endpoint string) *GeminiProvider {
	provider := NewGeminiProvider(apiKey, logger.NewNop())
	provider.endpoint = endpoint
	return provider
}

func TestGeminiUnavailableWithoutKey(t *testing.T) {
	provider := NewGeminiProvider("", logger.NewNop())
	assert.False(t, provider.Available(context.Background()))

	_, err := provider.ExplainElement(context.Background(), sodiumElement(), LevelBasic)
	require.Error(t, err)
}

func TestGeminiModelProbeWalksCandidates(t *testing.T) {
	server, requested := newGeminiStub(t, map[string]string{
		"gemini-1.5-flash": "ok",
	})
	provider := newGeminiProviderForTest("test-key", server.URL)

	require.True(t, provider.Available(context.Background()))
	assert.Equal(t, "gemini-1.5-flash", provider.model)

	// the first two candidates failed before the working one answered
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.0-flash-exp", "gemini-1.5-flash"}, *requested)

	// the probe runs once per process; further calls reuse the model
	assert.True(t, provider.Available(context.Background()))
	assert.Len(t, *requested, 3)
}

func TestGeminiAllProbesFail(t *testing.T) {
	server, _ := newGeminiStub(t, nil)
	provider := newGeminiProviderForTest("test-key", server.URL)

	assert.False(t, provider.Available(context.Background()))
}

func TestGeminiExplainReaction(t *testing.T) {
	server, _ := newGeminiStub(t, map[string]string{
		"gemini-2.5-flash": "## Análisis\n\nEl sodio reacciona con el cloro formando sal de mesa.",
	})
	provider := newGeminiProviderForTest("test-key", server.URL)

	text, err := provider.ExplainReaction(context.Background(), saltFormationReaction(), LevelIntermediate)
	require.NoError(t, err)
	assert.Contains(t, text, "sal de mesa")
}

func TestGeminiExplainElement(t *testing.T) {
	server, _ := newGeminiStub(t, map[string]string{
		"gemini-2.5-flash": "El sodio es un metal alcalino blando y muy reactivo.",
	})
	provider := newGeminiProviderForTest("test-key", server.URL)

	text, err := provider.ExplainElement(context.Background(), sodiumElement(), LevelBasic)
	require.NoError(t, err)
	assert.Contains(t, text, "metal alcalino")
}

func TestGeminiBlockedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	}))
	t.Cleanup(server.Close)

	provider := newGeminiProviderForTest("test-key", server.URL)

	// the probe "succeeds" at the transport level but the payload is blocked
	assert.False(t, provider.Available(context.Background()))
}

func TestGeminiEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	t.Cleanup(server.Close)

	provider := newGeminiProviderForTest("test-key", server.URL)
	_, err := provider.generateContent(context.Background(), "gemini-2.5-flash", "hola", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGeminiName(t *testing.T) {
	assert.Equal(t, SourceGemini, NewGeminiProvider("k", logger.NewNop()).Name())
}
