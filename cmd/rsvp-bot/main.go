package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"rsvp-bot/internal/config"
	"rsvp-bot/internal/greenapi"
	"rsvp-bot/internal/handler"
	"rsvp-bot/internal/round"
	"rsvp-bot/internal/server"
	"rsvp-bot/internal/storage"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := storage.Open(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open guest store")
	}

	sender := greenapi.NewClient(cfg.GreenID, cfg.GreenToken, log)
	runner := round.NewRunner(store, sender, cfg.Template, log)
	inbound := handler.NewInboundHandler(store, log)

	// "rsvp-bot send" runs one round from the command line; anything else
	// starts the webhook server.
	if len(os.Args) > 1 && os.Args[1] == "send" {
		summary, err := runner.Run(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("round failed")
		}
		log.Info().
			Int("total", summary.Total).
			Int("pending", summary.Pending).
			Int("sent", summary.Sent).
			Int("failed", len(summary.Failures)).
			Msg("round complete")
		return
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(runner, inbound, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("addr", srv.Addr).Str("store", cfg.StorePath).Msg("rsvp-bot listening")
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}
