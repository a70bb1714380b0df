package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/formrelay/formrelay/internal/config"
)

// gmailScope grants full mail access, which SMTP XOAUTH2 requires
const gmailScope = "https://mail.google.com/"

// exchangeToken trades the configured refresh token for a short-lived access
// token. One network round-trip, no retries, no caching.
func exchangeToken(ctx context.Context, cfg config.SMTPConfig) (string, error) {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmailScope},
	}

	source := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// xoauth2 implements the SASL XOAUTH2 mechanism for smtp.Auth
type xoauth2 struct {
	user  string
	token string
}

func xoauth2Auth(user, token string) smtp.Auth {
	return &xoauth2{user: user, token: token}
}

func (a *xoauth2) Start(server *smtp.ServerInfo) (string, []byte, error) {
	resp := fmt.Sprintf("user=%s\x01auth=Bearer %s\x01\x01", a.user, a.token)
	return "XOAUTH2", []byte(resp), nil
}

func (a *xoauth2) Next(fromServer []byte, more bool) ([]byte, error) {
	// The server only continues the exchange to deliver an error blob;
	// an empty response tells it to finish with the SMTP error.
	if more {
		return []byte(""), nil
	}
	return nil, nil
}
