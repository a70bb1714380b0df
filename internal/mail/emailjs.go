package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/relay"
)

// EmailJSTransport sends through the EmailJS REST API. EmailJS renders the
// message server-side from a template, so the transport posts template
// parameters rather than a finished body.
type EmailJSTransport struct {
	serviceID  string
	templateID string
	userID     string
	privateKey string
	baseURL    string
	client     *http.Client
}

// NewEmailJS creates an EmailJS transport
func NewEmailJS(cfg config.EmailJSConfig) *EmailJSTransport {
	return &EmailJSTransport{
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		userID:     cfg.UserID,
		privateKey: cfg.PrivateKey,
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns "emailjs"
func (t *EmailJSTransport) Name() string { return "emailjs" }

// SpoofsFrom is false: EmailJS sends from the account tied to the service id.
func (t *EmailJSTransport) SpoofsFrom() bool { return false }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the template parameters to api/v1.0/email/send. EmailJS
// responds with a bare "OK" body and no message identifier.
func (t *EmailJSTransport) Send(ctx context.Context, msg relay.OutboundEmail) (string, error) {
	payload := emailJSRequest{
		ServiceID:   t.serviceID,
		TemplateID:  t.templateID,
		UserID:      t.userID,
		AccessToken: t.privateKey,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.ReplyTo,
			"reply_to":   msg.ReplyTo,
			"to_email":   msg.To,
			"subject":    msg.Subject,
			"message":    msg.Text,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := t.baseURL + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", relay.WrapError(relay.KindNetwork, "emailjs request failed", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		kind := relay.ClassifyProvider(resp.StatusCode, string(respBody))
		return "", relay.NewError(kind, fmt.Sprintf("emailjs error %d: %s", resp.StatusCode, string(respBody)))
	}

	return "", nil
}
