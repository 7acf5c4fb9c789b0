package email

// Config holds email service configuration.
// The Postmark token is optional: without it NewSender returns a DevSender
// that writes messages to DevOutputDir instead of delivering them.
type Config struct {
	PostmarkServerToken string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkBaseURL     string `env:"POSTMARK_BASE_URL"`
	SenderEmail         string `env:"EMAIL_SENDER" envDefault:"noreply@localhost.localdomain"`
	DevOutputDir        string `env:"EMAIL_DEV_OUTPUT_DIR" envDefault:"./tmp/emails"`
}

// Enabled reports whether real delivery through Postmark is configured.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != ""
}
