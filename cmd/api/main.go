package main

import (
	"os"

	"github.com/avdeyev/eduboard/internal/pkg/logger"
	"github.com/avdeyev/eduboard/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Setup failures are already logged with detail inside NewServer
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
