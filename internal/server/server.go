package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quimilab/backend/config"
	"github.com/quimilab/backend/internal/database"
	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/router"
	"github.com/quimilab/backend/internal/seed"
	"github.com/quimilab/backend/internal/service"
)

// Server owns the HTTP listener and the backing connections.
type Server struct {
	cfg  *config.Config
	log  *logger.Logger
	http *http.Server
}

// New wires the full application: config, stores, cascade, routes.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	sqlDB, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	gormDB, err := database.NewGorm(cfg)
	if err != nil {
		return nil, fmt.Errorf("gorm: %w", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seed.Load(gormDB); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// rate limiting degrades gracefully without Redis
		log.Warn("redis unavailable, rate limiting disabled", "error", err)
		redisClient = nil
	}

	cascade := service.NewCascade(log,
		service.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout, log),
		service.NewGeminiProvider(cfg.GeminiAPIKey, log),
	)

	engine := router.SetupRouter(router.Deps{
		Config:  cfg,
		DB:      gormDB,
		Redis:   redisClient,
		Health:  sqlDB,
		Cascade: cascade,
		Log:     log,
	})

	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Router exposes the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.http.Handler.(*gin.Engine)
}

// Start blocks serving HTTP until the listener stops.
func (s *Server) Start() error {
	s.log.Info("server listening", "port", s.cfg.ServerPort)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
