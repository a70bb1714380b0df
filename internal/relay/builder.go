package relay

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// OutboundEmail is the provider-agnostic message handed to a transport.
// Derived deterministically from a ContactSubmission.
type OutboundEmail struct {
	// From is the rendered RFC From header for transports that send raw
	// messages; template-based transports use Name/ReplyTo instead
	From string
	// Name is the submitter's bare display name
	Name    string
	To      string
	Subject string
	Text    string
	HTML    string
	ReplyTo string
}

// htmlBody renders the notification the recipient sees. All submitted
// fields are escaped; the message goes through html/template so submitted
// content is treated as untrusted text.
var htmlBody = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #e60026;">New Contact Form Submission</h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px;">
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <p><strong>Message:</strong></p>
    <div style="background-color: white; padding: 15px; border-left: 4px solid #e60026; margin: 10px 0;">
      {{.Message}}
    </div>
  </div>
  <p style="color: #666; font-size: 14px; margin-top: 20px;">
    Sent from the contact form.
  </p>
</div>`))

type htmlData struct {
	Name    string
	Email   string
	Subject string
	Message template.HTML
}

// BuildEmail constructs the outbound email for a validated submission.
// sender is the configured service-account address; when spoofFrom is set
// (Mailgun route) the From header carries the submitter's own address
// instead. ReplyTo is always the submitter so the recipient can respond
// directly.
func BuildEmail(sub ContactSubmission, sender, recipient string, spoofFrom bool) OutboundEmail {
	subject := sub.Subject
	if subject == "" {
		subject = fmt.Sprintf("Contact from %s", sub.Name)
	}

	from := fmt.Sprintf("%q <%s>", sub.Name, sender)
	if spoofFrom {
		from = fmt.Sprintf("%q <%s>", sub.Name, sub.Email)
	}

	return OutboundEmail{
		From:    from,
		Name:    sub.Name,
		To:      recipient,
		Subject: subject,
		Text:    fmt.Sprintf("%s\n\nFrom: %s <%s>", sub.Message, sub.Name, sub.Email),
		HTML:    renderHTML(sub, subject),
		ReplyTo: sub.Email,
	}
}

func renderHTML(sub ContactSubmission, subject string) string {
	// Escape first, then turn newlines into <br> so multi-line messages
	// keep their shape without letting submitted markup through.
	escaped := template.HTMLEscapeString(sub.Message)
	message := strings.ReplaceAll(escaped, "\n", "<br>")

	var buf bytes.Buffer
	err := htmlBody.Execute(&buf, htmlData{
		Name:    sub.Name,
		Email:   sub.Email,
		Subject: subject,
		Message: template.HTML(message),
	})
	if err != nil {
		// The template is static and the data is plain text; a render
		// failure leaves the text body as the only content.
		return ""
	}
	return buf.String()
}
