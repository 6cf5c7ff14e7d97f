package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
	"github.com/quimilab/backend/internal/seed"
	"github.com/quimilab/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB opens an in-memory database with the schema migrated and the
// demo dataset loaded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Element{},
		&models.Reaction{},
		&models.ReactionElement{},
		&models.Molecule{},
	))
	require.NoError(t, seed.Load(db))

	return db
}

// setupTestRouter wires all handlers over a seeded database, with the
// cascade reduced to its template tier.
func setupTestRouter(t *testing.T, providers ...service.Provider) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	log := logger.NewNop()

	router := gin.New()
	apiGroup := router.Group("/api")
	apiGroup.GET("/", Root)

	NewElementHandler(db, log).RegisterRoutes(apiGroup)
	NewReactionHandler(db, service.NewMatcher(db), log).RegisterRoutes(apiGroup)
	NewMoleculeHandler(db, log).RegisterRoutes(apiGroup)
	NewAIHandler(db, service.NewCascade(log, providers...), log).RegisterRoutes(apiGroup)

	return router, db
}

// performRequest runs one request through the router and decodes the JSON
// body into a generic map.
func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}
