package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/relay"
)

// MailgunTransport sends through the Mailgun Messages API.
type MailgunTransport struct {
	apiKey  string
	domain  string
	baseURL string
	client  *http.Client
}

// NewMailgun creates a Mailgun transport for the configured domain
func NewMailgun(cfg config.MailgunConfig) *MailgunTransport {
	return &MailgunTransport{
		apiKey:  cfg.APIKey,
		domain:  cfg.Domain,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns "mailgun"
func (t *MailgunTransport) Name() string { return "mailgun" }

// SpoofsFrom is true: the Mailgun route sends with the submitter's address
// on the From header.
func (t *MailgunTransport) SpoofsFrom() bool { return true }

// Send posts the message to /v3/{domain}/messages with Basic Auth
// ("api" as username).
func (t *MailgunTransport) Send(ctx context.Context, msg relay.OutboundEmail) (string, error) {
	form := url.Values{}
	form.Add("from", msg.From)
	form.Add("to", msg.To)
	form.Add("subject", msg.Subject)
	form.Add("text", msg.Text)
	if msg.HTML != "" {
		form.Add("html", msg.HTML)
	}
	if msg.ReplyTo != "" {
		form.Add("h:Reply-To", msg.ReplyTo)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", t.baseURL, t.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", relay.WrapError(relay.KindNetwork, "mailgun request failed", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		kind := relay.ClassifyProvider(resp.StatusCode, string(body))
		return "", relay.NewError(kind, fmt.Sprintf("mailgun error %d: %s", resp.StatusCode, string(body)))
	}

	var result struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		// The provider accepted the message; an unexpected success body
		// only costs the message id
		return "", nil
	}

	return strings.Trim(result.ID, "<>"), nil
}
