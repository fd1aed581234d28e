// Package server exposes the webhook endpoint and a health check when the bot
// runs in webhook mode instead of long polling.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/iotsystems/hdlbot/internal/bot"
)

// Server serves Telegram webhook updates over HTTP.
type Server struct {
	httpServer *http.Server
	bot        *bot.Bot
	logger     *zap.Logger
}

// New creates a Server listening on host:port.
func New(host string, port int, b *bot.Bot, logger *zap.Logger) *Server {
	s := &Server{bot: b, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Get("/healthz", s.handleHealth)
	r.Post("/webhook", s.handleWebhook)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: r,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins serving. It blocks until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("webhook server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleWebhook decodes one update and dispatches it. Telegram retries on
// non-200, so a malformed body is answered 200 to avoid a redelivery loop.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update bot.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.logger.Warn("malformed webhook payload", zap.Error(err))
		w.WriteHeader(http.StatusOK)
		return
	}
	s.bot.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}
