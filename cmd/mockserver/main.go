package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/taskbench/taskbench-go/internal/config"
	"github.com/taskbench/taskbench-go/internal/logging"
	"github.com/taskbench/taskbench-go/internal/mockapi"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	srv := mockapi.NewServer(cfg.Mock)
	if err := srv.Store().Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed fixture accounts")
	}

	server := &http.Server{
		Addr:         cfg.Mock.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Mock Taskbench API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
