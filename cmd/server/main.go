package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/agenthands/smartform/internal/app"
	"github.com/agenthands/smartform/internal/server"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := app.LoadConfig("")
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	logger := a.Logger
	defer func() { _ = logger.Sync() }()
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to close llm client", zap.Error(err))
		}
	}()

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.NewServer(cfg, a.Service, a.Stats, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		// the explanation call dominates; leave room past the LLM timeout
		WriteTimeout: cfg.LLM.TimeoutDuration() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting server",
		zap.String("port", cfg.Server.Port),
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("mode", cfg.Explain.Mode))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
