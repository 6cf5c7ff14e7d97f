package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quimilab/backend/config"
	"github.com/quimilab/backend/internal/api"
	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/middleware"
	"github.com/quimilab/backend/internal/service"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Health  api.Pinger
	Cascade *service.Cascade
	Log     *logger.Logger
}

// SetupRouter configures the application routes.
func SetupRouter(deps Deps) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	healthHandler := api.NewHealthHandler(deps.Health, deps.Redis)
	router.GET("/health", healthHandler.Health)

	apiGroup := router.Group("/api")
	apiGroup.GET("/", api.Root)

	api.NewElementHandler(deps.DB, deps.Log).RegisterRoutes(apiGroup)
	api.NewMoleculeHandler(deps.DB, deps.Log).RegisterRoutes(apiGroup)

	matcher := service.NewMatcher(deps.DB)
	api.NewReactionHandler(deps.DB, matcher, deps.Log).RegisterRoutes(apiGroup)

	// The explain endpoints carry their own throttle: the upstream
	// providers are the scarce resource, not the database.
	var throttle []gin.HandlerFunc
	if deps.Redis != nil {
		limiter := middleware.NewAIExplanationRateLimiter(deps.Redis, deps.Log)
		throttle = append(throttle, limiter.Middleware())
	}
	api.NewAIHandler(deps.DB, deps.Cascade, deps.Log).RegisterRoutes(apiGroup, throttle...)

	return router
}
