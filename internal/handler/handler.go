package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/logger"
	"github.com/formrelay/formrelay/internal/relay"
)

const (
	// ServiceName identifies the relay in health reports
	ServiceName = "formrelay"
	// ServiceVersion is reported by the health endpoint
	ServiceVersion = "1.0.0"
)

// Dispatcher performs the single send attempt for a built email.
type Dispatcher interface {
	Name() string
	SpoofsFrom() bool
	Dispatch(ctx context.Context, msg relay.OutboundEmail) relay.DispatchResult
}

// Handler holds all HTTP handlers
type Handler struct {
	log *logger.Logger
	cfg *config.Config
	// dispatcher is nil when no transport is configured; send requests
	// then fail with a configuration error and health reports Degraded
	dispatcher Dispatcher
	started    time.Time
}

// New creates a new Handler instance
func New(log *logger.Logger, cfg *config.Config, dispatcher Dispatcher) *Handler {
	return &Handler{
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
		started:    time.Now(),
	}
}

// errorResponse is the uniform JSON error body
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, accepted string) {
	h.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:   "Method not allowed",
		Message: "Only " + accepted + " requests are accepted",
	})
}

// NotFound answers unknown routes with a JSON body
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "Route not found"})
}
