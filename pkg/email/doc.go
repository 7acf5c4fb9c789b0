// Package email provides a provider-agnostic interface for sending
// transactional emails, with a Postmark implementation for production and a
// file-writing sender for local development.
//
// # Architecture
//
// The package is built around the EmailSender interface:
//   - PostmarkClient delivers through Postmark's transactional API
//   - DevSender saves each message as HTML plus JSON metadata on disk
//
// NewSender picks one of them from Config: a configured server token means
// Postmark, anything else means DevSender.
//
// All implementations validate SendEmailParams before sending. Subjects with
// CR or LF are rejected so header injection cannot happen even when a caller
// forgets to sanitize.
//
// # Usage
//
//	import "github.com/northlight/website/pkg/email"
//
//	sender, err := email.NewSender(cfg)
//	if err != nil {
//	    return err
//	}
//
//	html, err := templates.Render(ctx, templates.LeadNotification(data))
//	if err != nil {
//	    return err
//	}
//
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//	    SendTo:   "owner@example.com",
//	    ReplyTo:  "lead@example.com",
//	    Subject:  "New lead",
//	    BodyHTML: html,
//	    Tag:      "lead-notification",
//	})
//
// # Error Handling
//
//   - ErrInvalidConfig: configuration validation failed
//   - ErrInvalidParams: email parameters validation failed
//   - ErrFailedToSendEmail: delivery failed
package email
