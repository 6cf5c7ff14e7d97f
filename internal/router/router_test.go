package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quimilab/backend/config"
	"github.com/quimilab/backend/internal/database"
	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/seed"
	"github.com/quimilab/backend/internal/service"
)

type okPinger struct{}

func (okPinger) HealthCheck(ctx context.Context) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.Load(db))

	log := logger.NewNop()
	return SetupRouter(Deps{
		Config:  &config.Config{AllowedOrigins: []string{"http://localhost:5173"}},
		DB:      db,
		Redis:   nil,
		Health:  okPinger{},
		Cascade: service.NewCascade(log),
		Log:     log,
	})
}

func TestRouterServesAPIRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/",
		"/api/elements",
		"/api/elements/H",
		"/api/elements/periodic-table",
		"/api/reactions",
		"/api/reactions/1",
		"/api/reactions/1/animation",
		"/api/reactions/by-type/synthesis",
		"/api/molecules/H2O",
		"/api/ai/status",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestRouterAttachesRequestID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/elements", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterHealthDegradedWithoutRedis(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":true`)
	assert.Contains(t, w.Body.String(), `"redis":false`)
}

func TestRouterCORSHeaders(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/elements", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
