package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nba-dispatch/agents/dispatcher"
	"nba-dispatch/shared/config"
	"nba-dispatch/shared/logging"
)

func main() {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := dispatcher.New(cfg, logger)
	if err := agent.Initialize(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to initialize agent")
		os.Exit(1)
	}

	if err := agent.RunOnce(ctx); err != nil {
		logger.Error().Err(err).Msg("dispatch failed")
		os.Exit(1)
	}

	logger.Info().Bool("healthy", agent.Healthy()).Msg("dispatch complete")
}
