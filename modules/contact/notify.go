package contact

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/a-h/templ"

	"github.com/northlight/website/pkg/email"
	"github.com/northlight/website/pkg/email/templates"
	"github.com/northlight/website/pkg/sanitizer"
)

const notificationTag = "contact-lead"

// Notification is the content of an owner notification. Display fields are
// the sanitized, HTML-escaped values as stored; Message is the validated text
// before escaping, since the e-mail body escapes it while building paragraphs.
type Notification struct {
	LeadID         string
	Name           string
	SubjectName    string
	Email          string
	Phone          string
	Company        string
	MarketingSpend string
	HearAboutUs    string
	Message        string
	Suspicious     bool
	ReceivedAt     time.Time
}

// Notifier tells the site owner about a new lead.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// EmailNotifier sends notifications through an email.EmailSender.
type EmailNotifier struct {
	sender email.EmailSender
	to     string
}

func NewEmailNotifier(sender email.EmailSender, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, to: to}
}

func (n *EmailNotifier) Notify(ctx context.Context, note Notification) error {
	body, err := templates.Render(ctx, templates.LeadNotification(templates.LeadNotificationData{
		LeadID:         note.LeadID,
		Name:           html.UnescapeString(note.Name),
		Email:          html.UnescapeString(note.Email),
		Phone:          html.UnescapeString(note.Phone),
		Company:        html.UnescapeString(note.Company),
		MarketingSpend: html.UnescapeString(note.MarketingSpend),
		HearAboutUs:    html.UnescapeString(note.HearAboutUs),
		Message:        templ.Raw(sanitizer.TextToHTMLParagraphs(note.Message)),
		Suspicious:     note.Suspicious,
		ReceivedAt:     note.ReceivedAt,
	}))
	if err != nil {
		return fmt.Errorf("render lead notification: %w", err)
	}

	return n.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   n.to,
		ReplyTo:  note.Email,
		Subject:  notificationSubject(note),
		BodyHTML: body,
		Tag:      notificationTag,
	})
}

func notificationSubject(n Notification) string {
	prefix := "New lead"
	if n.Suspicious {
		prefix = "[Suspicious] New lead"
	}
	return sanitizer.SanitizeEmailSubject(prefix + ": " + n.SubjectName)
}
