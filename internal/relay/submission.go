package relay

import (
	"encoding/json"
	"regexp"
	"strings"
)

// emailPattern is the simple local@domain.tld shape accepted by the relay
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactSubmission is a validated contact-form submission. It lives for a
// single request and is never persisted.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
	Subject string
}

// submissionBody is the raw request payload. Some historical form clients
// send from_name/from_email instead of name/email; both are accepted.
type submissionBody struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
}

// ParseSubmission decodes and validates a raw request body into a
// ContactSubmission. It has no side effects.
func ParseSubmission(body []byte) (ContactSubmission, error) {
	var raw submissionBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return ContactSubmission{}, WrapError(KindValidation, "invalid request body", err)
	}

	if raw.Name == "" {
		raw.Name = raw.FromName
	}
	if raw.Email == "" {
		raw.Email = raw.FromEmail
	}

	sub := ContactSubmission{
		Name:    strings.TrimSpace(raw.Name),
		Email:   strings.ToLower(strings.TrimSpace(raw.Email)),
		Message: strings.TrimSpace(raw.Message),
		Subject: strings.TrimSpace(raw.Subject),
	}

	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		return ContactSubmission{}, NewError(KindValidation,
			"Missing required fields: name, email, and message are required")
	}

	if !emailPattern.MatchString(sub.Email) {
		return ContactSubmission{}, NewError(KindValidation, "Invalid email format")
	}

	return sub, nil
}
