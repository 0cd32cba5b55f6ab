package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/santhosh0728/edutask-exam-gateway/internal/config"
	"github.com/santhosh0728/edutask-exam-gateway/internal/examapi"
	"github.com/santhosh0728/edutask-exam-gateway/internal/handler"
	"github.com/santhosh0728/edutask-exam-gateway/internal/logger"
	"github.com/santhosh0728/edutask-exam-gateway/internal/router"
	"github.com/santhosh0728/edutask-exam-gateway/internal/session"
	"github.com/santhosh0728/edutask-exam-gateway/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("backend", cfg.BackendBaseURL).
		Msg("Starting EduTask Exam Gateway")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Backend Client & Session Manager ──────────────────────────────
	backend := examapi.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, log)
	manager := session.NewManager(backend, log)

	// ─── Idle Session Reaper ───────────────────────────────────────────
	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	go runReaper(reaperCtx, manager, cfg, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	handlers := &router.Handlers{
		Session: handler.NewSessionHandler(manager, log),
		Stream:  handler.NewWSHandler(manager, log, cfg.AllowedOrigins),
	}
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the reaper. Live sessions hold no external resources beyond
	// their tick goroutines, which die with the process.
	reaperCancel()

	log.Info().Int("live_sessions", manager.Count()).Msg("Shutdown complete")
}

// runReaper periodically tears down sessions abandoned by their clients.
func runReaper(ctx context.Context, manager *session.Manager, cfg *config.Config, log zerolog.Logger) {
	ticker := time.NewTicker(cfg.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.ReapIdle(cfg.SessionIdleTTL)
		}
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
