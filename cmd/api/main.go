package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quimilab/backend/config"
	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zl, err := logger.New(string(config.GetEnvironment()))
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zl.Sync()

	srv, err := server.New(cfg, zl)
	if err != nil {
		zl.Fatal("server init failed", "error", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zl.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		zl.Info("received signal, shutting down", "signal", sig.String())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		zl.Error("shutdown error", "error", err)
	}
	zl.Info("server stopped")
}
