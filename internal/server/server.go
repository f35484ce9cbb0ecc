// Package server exposes the webhook and round-trigger HTTP surface.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"rsvp-bot/internal/handler"
	"rsvp-bot/internal/round"
)

// Server wires the round runner and the inbound handler to HTTP routes. A
// single mutex serializes both operations: the guest store has no locking of
// its own, so a round and an inbound update must never overlap.
type Server struct {
	runner  *round.Runner
	inbound *handler.InboundHandler
	log     zerolog.Logger

	mu sync.Mutex
}

// New creates a Server.
func New(runner *round.Runner, inbound *handler.InboundHandler, log zerolog.Logger) *Server {
	return &Server{
		runner:  runner,
		inbound: inbound,
		log:     log.With().Str("component", "server").Logger(),
	}
}

// Router builds the HTTP routes:
//
//	POST /webhook     — provider notifications
//	GET  /send_round  — trigger one invitation round
//	GET  /health      — liveness
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Post("/webhook", s.handleWebhook)
	r.Get("/send_round", s.handleSendRound)

	return r
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var evt handler.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		s.log.Warn().Err(err).Msg("undecodable webhook payload")
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": string(handler.ResultError)})
		return
	}

	s.mu.Lock()
	res := s.inbound.HandleInbound(&evt)
	s.mu.Unlock()

	status := http.StatusOK
	if res == handler.ResultError {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, map[string]string{"status": string(res)})
}

func (s *Server) handleSendRound(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summary, err := s.runner.Run(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("round failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "round_sent",
		"summary": summary,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
