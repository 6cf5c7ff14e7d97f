package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimilab/backend/internal/models"
	"github.com/quimilab/backend/internal/service"
)

// scriptedProvider drives the cascade from handler tests.
type scriptedProvider struct {
	name      string
	available bool
	text      string
	panics    bool
}

func (p *scriptedProvider) Name() string                       { return p.name }
func (p *scriptedProvider) Available(ctx context.Context) bool { return p.available }

func (p *scriptedProvider) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error) {
	if p.panics {
		panic("provider crashed")
	}
	return p.text, nil
}

func (p *scriptedProvider) ExplainElement(ctx context.Context, element *models.Element, level string) (string, error) {
	if p.panics {
		panic("provider crashed")
	}
	return p.text, nil
}

func TestExplainReactionFallsBackToTemplate(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{"reaction_id": 3, "level": "basic"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, service.SourceLocalTemplate, body["source"])
	assert.Equal(t, "basic", body["level"])
	assert.Contains(t, body["explanation"], "2Na + Cl₂ → 2NaCl")

	reaction := body["reaction"].(map[string]interface{})
	assert.Equal(t, "Formación de Cloruro de Sodio", reaction["name"])
}

func TestExplainReactionUsesProvider(t *testing.T) {
	provider := &scriptedProvider{
		name:      "ollama",
		available: true,
		text:      "El sodio y el cloro forman sal mediante un enlace iónico.",
	}
	router, _ := setupTestRouter(t, provider)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{"reaction_id": 3})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ollama", body["source"])
	assert.Equal(t, provider.text, body["explanation"])
	// unspecified level defaults to intermediate
	assert.Equal(t, service.LevelIntermediate, body["level"])
}

func TestExplainReactionNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, _ := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{"reaction_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExplainReactionUnverifiedNotFound(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&models.Reaction{
		Name: "Propuesta", Equation: "X → Y", ReactionType: models.TypeSynthesis,
	}).Error)

	w, _ := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{"reaction_id": 7})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExplainReactionMissingID(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"].(map[string]interface{})["message"], "reaction_id")
}

func TestExplainReactionRecoverFromProviderPanic(t *testing.T) {
	router, _ := setupTestRouter(t, &scriptedProvider{name: "ollama", available: true, panics: true})

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-reaction",
		map[string]interface{}{"reaction_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, SourceLocalFallback, body["source"])
	assert.NotEmpty(t, body["explanation"])
}

func TestExplainElementBySymbol(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-element",
		map[string]interface{}{"symbol": "H", "level": "basic"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, service.SourceLocalTemplate, body["source"])
	assert.Contains(t, body["explanation"], "Hidrógeno")
	assert.Contains(t, body["explanation"], "1")

	element := body["element"].(map[string]interface{})
	assert.Equal(t, "H", element["symbol"])
	assert.Equal(t, float64(1), element["atomic_number"])
}

func TestExplainElementByAtomicNumber(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-element",
		map[string]interface{}{"atomic_number": 26})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Fe", body["element"].(map[string]interface{})["symbol"])
}

func TestExplainElementSanitizesSymbol(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodPost, "/api/ai/explain-element",
		map[string]interface{}{"symbol": "  na  "})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Na", body["element"].(map[string]interface{})["symbol"])
}

func TestExplainElementRequiresIdentifier(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, _ := performRequest(t, router, http.MethodPost, "/api/ai/explain-element",
		map[string]interface{}{"level": "basic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExplainElementNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, _ := performRequest(t, router, http.MethodPost, "/api/ai/explain-element",
		map[string]interface{}{"symbol": "Xx"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIStatus(t *testing.T) {
	router, _ := setupTestRouter(t,
		&scriptedProvider{name: "ollama", available: false},
		&scriptedProvider{name: "gemini", available: true},
	)

	w, body := performRequest(t, router, http.MethodGet, "/api/ai/status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	providers := body["providers"].(map[string]interface{})
	assert.Equal(t, false, providers["ollama"])
	assert.Equal(t, true, providers["gemini"])
	assert.Equal(t, true, providers[service.SourceLocalTemplate])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAPIRoot(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "QuimiLab API", body["name"])
}
