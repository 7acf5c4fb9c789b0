package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

// LeadNotificationData is the content of the owner notification sent for a
// new lead. The string fields are plain text and are escaped when rendered.
// Message is trusted markup, typically templ.Raw over already escaped
// paragraphs.
type LeadNotificationData struct {
	LeadID         string
	Name           string
	Email          string
	Phone          string
	Company        string
	MarketingSpend string
	HearAboutUs    string
	Message        templ.Component
	Suspicious     bool
	ReceivedAt     time.Time
}

// LeadNotification renders the owner notification email body.
func LeadNotification(data LeadNotificationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rows := []struct {
			label, value string
		}{
			{"Name", data.Name},
			{"Email", data.Email},
			{"Phone", data.Phone},
			{"Company", data.Company},
			{"Monthly marketing spend", data.MarketingSpend},
			{"Heard about us", data.HearAboutUs},
		}

		ew := &errWriter{w: w}
		ew.write(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#1f2937;">`)
		ew.write(`<h2 style="margin:0 0 16px;">New contact form submission</h2>`)
		if data.Suspicious {
			ew.write(`<p style="color:#b91c1c;"><strong>Flagged:</strong> this submission exceeded the rate limit.</p>`)
		}
		ew.write(`<table cellpadding="6" style="border-collapse:collapse;">`)
		for _, row := range rows {
			if row.value == "" {
				continue
			}
			ew.write(`<tr><td style="font-weight:bold;">`)
			ew.write(row.label)
			ew.write(`</td><td>`)
			ew.write(templ.EscapeString(row.value))
			ew.write(`</td></tr>`)
		}
		ew.write(`</table><h3 style="margin:24px 0 8px;">Message</h3>`)
		if data.Message != nil && ew.err == nil {
			ew.err = data.Message.Render(ctx, w)
		}
		ew.write(`<p style="color:#6b7280;font-size:12px;">Lead `)
		ew.write(templ.EscapeString(data.LeadID))
		if !data.ReceivedAt.IsZero() {
			ew.write(` received `)
			ew.write(data.ReceivedAt.UTC().Format(time.RFC1123))
		}
		ew.write(`</p></body></html>`)
		return ew.err
	})
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}
