package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/relay"
)

// authFunc produces the smtp.Auth for a send attempt. The OAuth2 variant
// performs a token exchange here and may fail before any SMTP traffic.
type authFunc func(ctx context.Context) (smtp.Auth, error)

// SMTPTransport sends through an SMTP session, authenticated either with an
// app password or with an OAuth2 access token (XOAUTH2).
type SMTPTransport struct {
	cfg  config.SMTPConfig
	mode string
	auth authFunc
}

// NewSMTPAppPassword creates an SMTP transport using PLAIN auth with the
// configured app password.
func NewSMTPAppPassword(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		cfg:  cfg,
		mode: "smtp",
		auth: func(ctx context.Context) (smtp.Auth, error) {
			return smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host), nil
		},
	}
}

// NewSMTPOAuth2 creates an SMTP transport that exchanges the configured
// refresh token for an access token before each send. The exchange is a
// one-shot call: a failure surfaces as a configuration error, never as a
// send failure, and the obtained token is not cached across requests.
func NewSMTPOAuth2(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		cfg:  cfg,
		mode: "smtp-oauth2",
		auth: func(ctx context.Context) (smtp.Auth, error) {
			token, err := exchangeToken(ctx, cfg)
			if err != nil {
				return nil, relay.WrapError(relay.KindConfiguration, "oauth2 token exchange failed", err)
			}
			return xoauth2Auth(cfg.User, token), nil
		},
	}
}

// Name returns "smtp" or "smtp-oauth2"
func (t *SMTPTransport) Name() string { return t.mode }

// SpoofsFrom is false: SMTP routes always send as the configured account.
func (t *SMTPTransport) SpoofsFrom() bool { return false }

// Send authenticates and delivers the message in a single SMTP session.
func (t *SMTPTransport) Send(ctx context.Context, msg relay.OutboundEmail) (string, error) {
	auth, err := t.auth(ctx)
	if err != nil {
		return "", err
	}

	raw := buildMIME(msg)

	if t.cfg.Secure {
		return "", t.sendTLS(auth, msg.To, raw)
	}

	// Plain dial with STARTTLS upgrade when the server offers it
	if err := smtp.SendMail(t.cfg.Addr(), auth, t.cfg.User, []string{msg.To}, raw); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "", nil
}

// sendTLS runs the session over an implicit-TLS connection (port 465 style)
func (t *SMTPTransport) sendTLS(auth smtp.Auth, to string, raw []byte) error {
	conn, err := tls.Dial("tcp", t.cfg.Addr(), &tls.Config{ServerName: t.cfg.Host})
	if err != nil {
		return relay.WrapError(relay.KindNetwork, "smtp tls dial failed", err)
	}

	client, err := smtp.NewClient(conn, t.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(t.cfg.User); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}

// buildMIME renders the multipart/alternative message for the SMTP session
func buildMIME(msg relay.OutboundEmail) []byte {
	headers := []string{
		"From: " + msg.From,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
	}
	if msg.ReplyTo != "" {
		headers = append(headers, "Reply-To: "+msg.ReplyTo)
	}
	headers = append(headers, "MIME-Version: 1.0")

	var lines []string
	if msg.HTML != "" && msg.Text != "" {
		boundary := "boundary_formrelay_alt"
		lines = append(headers,
			"Content-Type: multipart/alternative; boundary="+boundary,
			"",
			"--"+boundary,
			"Content-Type: text/plain; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.Text,
			"",
			"--"+boundary,
			"Content-Type: text/html; charset=UTF-8",
			"Content-Transfer-Encoding: 7bit",
			"",
			msg.HTML,
			"",
			"--"+boundary+"--",
		)
	} else if msg.HTML != "" {
		lines = append(headers,
			"Content-Type: text/html; charset=UTF-8",
			"",
			msg.HTML,
		)
	} else {
		lines = append(headers,
			"Content-Type: text/plain; charset=UTF-8",
			"",
			msg.Text,
		)
	}

	return []byte(strings.Join(lines, "\r\n"))
}
