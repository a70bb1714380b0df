package handler

import (
	"net/http"
	"time"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/relay"
)

// HealthResponse is the health/readiness document. Credential fields are
// always masked; full secret values never appear here.
type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Service     string         `json:"service"`
	Version     string         `json:"version"`
	Uptime      float64        `json:"uptime"`
	Environment string         `json:"environment"`
	Transport   string         `json:"transport,omitempty"`
	Mailgun     *MailgunHealth `json:"mailgun,omitempty"`
	SMTP        *SMTPHealth    `json:"smtp,omitempty"`
	EmailJS     *EmailJSHealth `json:"emailjs,omitempty"`
	Recipient   string         `json:"recipient,omitempty"`
	Warning     string         `json:"warning,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// MailgunHealth reflects Mailgun configuration state
type MailgunHealth struct {
	Configured bool   `json:"configured"`
	Domain     string `json:"domain,omitempty"`
	APIKey     string `json:"apiKey,omitempty"`
}

// SMTPHealth reflects SMTP configuration state
type SMTPHealth struct {
	Configured bool   `json:"configured"`
	Host       string `json:"host,omitempty"`
	User       string `json:"user,omitempty"`
	Auth       string `json:"auth,omitempty"`
}

// EmailJSHealth reflects EmailJS configuration state
type EmailJSHealth struct {
	Configured bool   `json:"configured"`
	ServiceID  string `json:"serviceId,omitempty"`
}

// Health reports configuration readiness without contacting any provider.
// It must not fail: internal panics are converted to a Status "Error" body.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, "GET")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().Interface("error", rec).Msg("health check failed")
			h.writeJSON(w, http.StatusInternalServerError, HealthResponse{
				Status:    "Error",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Service:   ServiceName,
				Version:   ServiceVersion,
				Message:   "Health check failed",
			})
		}
	}()

	h.writeJSON(w, http.StatusOK, BuildHealth(h.cfg, time.Since(h.started)))
}

// BuildHealth assembles the health document from configuration presence.
// Shared with the relayctl check command.
func BuildHealth(cfg *config.Config, uptime time.Duration) HealthResponse {
	resp := HealthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Service:     ServiceName,
		Version:     ServiceVersion,
		Uptime:      uptime.Seconds(),
		Environment: cfg.Relay.Environment,
	}

	switch {
	case cfg.SMTP.AppPasswordConfigured():
		resp.Transport = "smtp"
	case cfg.SMTP.OAuth2Configured():
		resp.Transport = "smtp-oauth2"
	case cfg.Mailgun.Configured():
		resp.Transport = "mailgun"
	case cfg.EmailJS.Configured():
		resp.Transport = "emailjs"
	}

	if cfg.Mailgun.Configured() {
		resp.Mailgun = &MailgunHealth{
			Configured: true,
			Domain:     cfg.Mailgun.Domain,
			APIKey:     relay.MaskSecret(cfg.Mailgun.APIKey),
		}
	}
	if cfg.SMTP.AppPasswordConfigured() || cfg.SMTP.OAuth2Configured() {
		auth := "app-password"
		if !cfg.SMTP.AppPasswordConfigured() {
			auth = "oauth2"
		}
		resp.SMTP = &SMTPHealth{
			Configured: true,
			Host:       cfg.SMTP.Host,
			User:       relay.MaskEmail(cfg.SMTP.User),
			Auth:       auth,
		}
	}
	if cfg.EmailJS.Configured() {
		resp.EmailJS = &EmailJSHealth{
			Configured: true,
			ServiceID:  cfg.EmailJS.ServiceID,
		}
	}

	if resp.Transport == "" {
		resp.Status = "Degraded"
		resp.Mailgun = &MailgunHealth{Configured: false}
		resp.Warning = "Mail transport credentials not configured. Email functionality will not work."
	} else if cfg.Relay.Recipient == "" {
		resp.Status = "Degraded"
		resp.Warning = "Recipient address not configured."
	}

	if cfg.Relay.Recipient != "" {
		resp.Recipient = relay.MaskEmail(cfg.Relay.Recipient)
	}

	return resp
}
