// booking-apistub runs the in-memory development stand-in for the booking
// API, for integration tests and local front-end work.
package main

import (
	"github.com/mawa3id/booking-client/internal/pkg/config"
	"github.com/mawa3id/booking-client/internal/stubserver"
	"github.com/mawa3id/booking-client/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	e := stubserver.New(cfg.Stub.JWTSecret, log)

	log.Info().Str("port", cfg.Stub.Port).Msg("starting booking api stub")
	if err := e.Start(":" + cfg.Stub.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
