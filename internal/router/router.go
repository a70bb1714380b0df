package router

import (
	"net/http"

	"github.com/formrelay/formrelay/internal/handler"
	"github.com/formrelay/formrelay/internal/logger"
	"github.com/formrelay/formrelay/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Handlers answer non-matching methods with a JSON 405 themselves, so
	// routes are registered without method patterns.
	mux.HandleFunc("/api/send-email", h.SendEmail)
	mux.HandleFunc("/api/health", h.Health)

	// Unknown routes get a JSON 404
	mux.HandleFunc("/", h.NotFound)

	// Apply middleware stack
	var hnd http.Handler = mux

	// CORS (answers OPTIONS preflights before they reach handlers)
	hnd = mw.CORS(hnd)

	// Request logging
	hnd = mw.Logger(hnd)

	// Request ID
	hnd = mw.RequestID(hnd)

	// Panic recovery (outermost)
	hnd = mw.Recover(hnd)

	return hnd
}
