package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements EmailSender for local development.
// Each message becomes an HTML body file plus a JSON metadata file in dir,
// so lead notifications can be inspected without a Postmark account.
type DevSender struct {
	dir string
}

// NewDevSender creates a development email sender that saves emails to disk.
// The directory will be created if it doesn't exist.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir}
}

// emailMetadata contains the email data saved to JSON (excluding HTML content).
type emailMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail saves the email as HTML and metadata as JSON to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o750); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := time.Now()
	timestamp := now.Format("2006_01_02_150405.000000")

	// Use tag if available, otherwise use subject
	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}

	// Sanitize identifier for filesystem
	safeIdentifier := sanitizeFilename(identifier)
	baseFilename := fmt.Sprintf("%s_%s", timestamp, safeIdentifier)

	htmlPath := filepath.Join(d.dir, baseFilename+".html")
	if err := os.WriteFile(htmlPath, []byte(params.BodyHTML), 0o600); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	metadata := emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		ReplyTo:   params.ReplyTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}

	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash, underscore, or dot
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a string into a safe filename.
// It replaces spaces with underscores, removes special characters,
// and truncates to a reasonable length.
func sanitizeFilename(s string) string {
	// Replace spaces with underscores
	s = strings.ReplaceAll(s, " ", "_")

	// Remove unsafe characters
	s = sanitizeRegex.ReplaceAllString(s, "")

	// Truncate if too long (keep it reasonable for filesystems)
	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}

	// Handle empty result
	if s == "" {
		s = "email"
	}

	return strings.ToLower(s)
}
