package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Relay   RelayConfig   `mapstructure:"relay"`
	Mailgun MailgunConfig `mapstructure:"mailgun"`
	EmailJS EmailJSConfig `mapstructure:"emailjs"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RelayConfig holds settings for the relay itself, independent of the
// transport used to deliver mail.
type RelayConfig struct {
	// Recipient is the address all contact-form mail is delivered to
	Recipient string `mapstructure:"recipient"`
	// SharedSecret, when non-empty, must match the x-form-secret request header
	SharedSecret string `mapstructure:"shared_secret"`
	// Environment controls error detail exposure: "production" hides details
	Environment string `mapstructure:"environment"`
}

// Production reports whether the relay runs with production error masking
func (c RelayConfig) Production() bool {
	return c.Environment == "production"
}

// MailgunConfig holds Mailgun Messages API credentials
type MailgunConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Domain  string `mapstructure:"domain"`
	BaseURL string `mapstructure:"base_url"`
}

// Configured reports whether the Mailgun transport is fully configured
func (c MailgunConfig) Configured() bool {
	return c.APIKey != "" && c.Domain != ""
}

// EmailJSConfig holds EmailJS REST API identifiers
type EmailJSConfig struct {
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	UserID     string `mapstructure:"user_id"`
	PrivateKey string `mapstructure:"private_key"`
	BaseURL    string `mapstructure:"base_url"`
}

// Configured reports whether the EmailJS transport is fully configured
func (c EmailJSConfig) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.UserID != ""
}

// SMTPConfig holds SMTP session configuration. Authentication is either an
// app password (when UseAppPassword is set) or an OAuth2 refresh-token flow.
type SMTPConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	Secure bool   `mapstructure:"secure"`
	// User is the mail-account identity the relay sends as
	User string `mapstructure:"user"`
	// UseAppPassword selects app-password auth over OAuth2
	UseAppPassword bool   `mapstructure:"use_app_password"`
	Password       string `mapstructure:"password"`
	// OAuth2 client credentials and refresh token for XOAUTH2 auth
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

// Addr returns the SMTP server address
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AppPasswordConfigured reports whether app-password auth is usable
func (c SMTPConfig) AppPasswordConfigured() bool {
	return c.UseAppPassword && c.User != "" && c.Password != ""
}

// OAuth2Configured reports whether OAuth2 auth is usable
func (c SMTPConfig) OAuth2Configured() bool {
	return c.User != "" && c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/formrelay")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("FORMRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Relay defaults
	v.SetDefault("relay.recipient", "")
	v.SetDefault("relay.shared_secret", "")
	v.SetDefault("relay.environment", "development")

	// Mailgun defaults
	v.SetDefault("mailgun.api_key", "")
	v.SetDefault("mailgun.domain", "")
	v.SetDefault("mailgun.base_url", "https://api.mailgun.net/v3")

	// EmailJS defaults
	v.SetDefault("emailjs.service_id", "")
	v.SetDefault("emailjs.template_id", "")
	v.SetDefault("emailjs.user_id", "")
	v.SetDefault("emailjs.private_key", "")
	v.SetDefault("emailjs.base_url", "https://api.emailjs.com")

	// SMTP defaults
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.secure", false)
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.use_app_password", false)
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.client_id", "")
	v.SetDefault("smtp.client_secret", "")
	v.SetDefault("smtp.refresh_token", "")
}
