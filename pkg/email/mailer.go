package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`            // Email address of the recipient
	ReplyTo  string `json:"reply_to,omitempty"` // Optional Reply-To address
	Subject  string `json:"subject"`            // Subject of the email
	BodyHTML string `json:"body_html"`          // HTML body of the email
	Tag      string `json:"tag,omitempty"`      // Optional
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks the required fields and address formats.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !emailRegex.MatchString(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.ReplyTo != "" && !emailRegex.MatchString(p.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.ContainsAny(p.Subject, "\r\n") {
		return fmt.Errorf("%w: Subject must not contain line breaks", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" {
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}

// NewSender returns a Postmark sender when a server token is configured and a
// DevSender writing to cfg.DevOutputDir otherwise.
func NewSender(cfg Config) (EmailSender, error) {
	if !cfg.Enabled() {
		return NewDevSender(cfg.DevOutputDir), nil
	}
	return NewPostmarkClient(cfg)
}
