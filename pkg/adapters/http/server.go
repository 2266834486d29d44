// Package http turns server-pushed continuation instructions into engine
// runs. Deployments that receive auto-redirect pushes over a local socket or
// an embedded server mount this handler; mobile-style hosts that get pushes
// through the OS can ignore it and call the engine directly.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/effective-digital/flowkit"
	"github.com/effective-digital/flowkit/internal/logging"
	"github.com/effective-digital/flowkit/pkg/domain"
	"github.com/effective-digital/flowkit/pkg/ports"
)

// Continuer is the continuation surface the listener drives.
type Continuer interface {
	Continue(ctx context.Context, instr flowkit.Instruction) error
}

// pushRequest is the wire shape of one pushed instruction. The payload field
// carries the base64-encoded JSON object unchanged.
type pushRequest struct {
	TransitionID string `json:"transitionId"`
	ProcessID    string `json:"processId"`
	Payload      string `json:"payload"`
}

// Server handles inbound push instructions.
type Server struct {
	engine Continuer
	submit ports.SubmitFunc
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a structured logger for the listener.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for pushed instructions. The submit
// func is bound into every instruction; typically the directory client's
// SubmitTransition.
func NewHandler(engine Continuer, submit ports.SubmitFunc, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		submit: submit,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/flow/continue", s.handleContinue)
	return r
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.TransitionID == "" || req.ProcessID == "" {
		http.Error(w, "transitionId and processId are required", http.StatusBadRequest)
		return
	}

	err := s.engine.Continue(r.Context(), flowkit.Instruction{
		TransitionID: req.TransitionID,
		ProcessID:    req.ProcessID,
		Payload:      []byte(req.Payload),
		Submit:       s.submit,
	})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, domain.ErrRunInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrDecodeFailed), errors.Is(err, domain.ErrUnknownStep):
		s.logger.Error("pushed instruction rejected", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.logger.Error("pushed instruction failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}
