package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/logger"
)

func TestLogger_AccessLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	mw := New(log, &config.Config{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// Chain order matches the router: RequestID outside Logger
	chain := mw.RequestID(mw.Logger(next))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, `"request_id":"rid-123"`)
	assert.Contains(t, out, `"path":"/api/health"`)
	assert.Contains(t, out, `"status":200`)
}

func TestLogger_CapturesStatusCode(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}
	mw := New(log, &config.Config{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
	rec := httptest.NewRecorder()
	mw.Logger(next).ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), `"status":400`)
}
