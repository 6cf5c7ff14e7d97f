package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListElements(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(23), body["count"])

	elements := body["elements"].([]interface{})
	first := elements[0].(map[string]interface{})
	assert.Equal(t, "H", first["symbol"])
	assert.Equal(t, "Hidrógeno", first["name_es"])
	// list view stays lightweight
	assert.NotContains(t, first, "electron_config")
}

func TestGetElement(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements/Na", nil)

	require.Equal(t, http.StatusOK, w.Code)
	element := body["element"].(map[string]interface{})
	assert.Equal(t, "Na", element["symbol"])
	assert.Equal(t, "Sodio", element["name_es"])
	assert.Equal(t, float64(1), body["valence_electrons"])
	assert.Equal(t, "metal alcalino", body["category_name"])
}

func TestGetElementNormalizesCase(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements/na", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Na", body["element"].(map[string]interface{})["symbol"])

	w, _ = performRequest(t, router, http.MethodGet, "/api/elements/CL", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetElementNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements/Xx", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, float64(404), errBody["code"])
	assert.Contains(t, errBody["message"], "Xx")
}

func TestElementsByCategory(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements/by-category?category=halogen", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])

	var symbols []string
	for _, raw := range body["elements"].([]interface{}) {
		symbols = append(symbols, raw.(map[string]interface{})["symbol"].(string))
	}
	assert.Equal(t, []string{"F", "Cl"}, symbols)
}

func TestElementsByCategoryRequiresParam(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, _ := performRequest(t, router, http.MethodGet, "/api/elements/by-category", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPeriodicTable(t *testing.T) {
	router, _ := setupTestRouter(t)

	w, body := performRequest(t, router, http.MethodGet, "/api/elements/periodic-table", nil)

	require.Equal(t, http.StatusOK, w.Code)
	periods := body["periods"].(map[string]interface{})
	assert.Len(t, periods["1"], 2)
	assert.Len(t, periods["2"], 8)
	assert.Len(t, periods["3"], 8)
}
