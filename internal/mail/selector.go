package mail

import (
	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/relay"
)

// Select inspects the configuration and picks exactly one transport.
// Historical deployments disagreed on precedence, so this order is the
// canonical one:
//
//  1. SMTP with app password, when explicitly flagged on
//  2. SMTP with OAuth2 refresh-token auth
//  3. Mailgun API
//  4. EmailJS API
//
// When nothing is fully configured the error carries KindConfiguration.
func Select(cfg *config.Config) (Transport, error) {
	switch {
	case cfg.SMTP.AppPasswordConfigured():
		return NewSMTPAppPassword(cfg.SMTP), nil
	case cfg.SMTP.OAuth2Configured():
		return NewSMTPOAuth2(cfg.SMTP), nil
	case cfg.Mailgun.Configured():
		return NewMailgun(cfg.Mailgun), nil
	case cfg.EmailJS.Configured():
		return NewEmailJS(cfg.EmailJS), nil
	default:
		return nil, relay.NewError(relay.KindConfiguration, "no transport configured")
	}
}
