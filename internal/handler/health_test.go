package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formrelay/formrelay/internal/config"
)

func TestHealth_OK(t *testing.T) {
	cfg := testConfig()
	cfg.Mailgun = config.MailgunConfig{APIKey: "key-1234567890", Domain: "mg.example.com"}
	h := newTestHandler(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "formrelay", body["service"])
	assert.Equal(t, "mailgun", body["transport"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, "development", body["environment"])
}

func TestHealth_DegradedWithoutTransport(t *testing.T) {
	h := newTestHandler(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Degraded", body["status"])
	assert.NotEmpty(t, body["warning"])

	mailgun, ok := body["mailgun"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, mailgun["configured"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBuildHealth_MasksCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Relay.Recipient = "richard@site.test"
	cfg.Mailgun = config.MailgunConfig{APIKey: "key-1234567890abcd", Domain: "mg.example.com"}

	doc := BuildHealth(cfg, time.Minute)

	require.NotNil(t, doc.Mailgun)
	assert.NotContains(t, doc.Mailgun.APIKey, "key-12345678")
	assert.Contains(t, doc.Mailgun.APIKey, "abcd")

	// Recipient address is never shown in full
	assert.NotContains(t, doc.Recipient, "richard")
	assert.Contains(t, doc.Recipient, "@site.test")
}

func TestBuildHealth_SMTPSection(t *testing.T) {
	cfg := testConfig()
	cfg.SMTP = config.SMTPConfig{
		Host:           "smtp.gmail.com",
		Port:           587,
		User:           "relayaccount@gmail.com",
		UseAppPassword: true,
		Password:       "app-password-value",
	}

	doc := BuildHealth(cfg, 0)

	assert.Equal(t, "smtp", doc.Transport)
	require.NotNil(t, doc.SMTP)
	assert.Equal(t, "app-password", doc.SMTP.Auth)
	assert.NotContains(t, doc.SMTP.User, "relayaccount")
	// The password itself never appears anywhere in the document
	assert.NotEqual(t, "app-password-value", doc.SMTP.Auth)
}

func TestBuildHealth_OAuth2Section(t *testing.T) {
	cfg := testConfig()
	cfg.SMTP = config.SMTPConfig{
		Host:         "smtp.gmail.com",
		User:         "relay@gmail.com",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "1//refresh-token-value",
	}

	doc := BuildHealth(cfg, 0)

	assert.Equal(t, "smtp-oauth2", doc.Transport)
	require.NotNil(t, doc.SMTP)
	assert.Equal(t, "oauth2", doc.SMTP.Auth)
}

func TestBuildHealth_DegradedWithoutRecipient(t *testing.T) {
	cfg := testConfig()
	cfg.Relay.Recipient = ""
	cfg.Mailgun = config.MailgunConfig{APIKey: "key", Domain: "mg.example.com"}

	doc := BuildHealth(cfg, 0)

	assert.Equal(t, "Degraded", doc.Status)
}

func TestBuildHealth_Uptime(t *testing.T) {
	doc := BuildHealth(testConfig(), 90*time.Second)
	assert.Equal(t, 90.0, doc.Uptime)
}
