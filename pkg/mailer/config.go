package mailer

// Config holds email service configuration. The Postmark tokens are optional
// so development environments can run without sending real email. When a
// notification recipient is empty, submission notifications are disabled
// entirely.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@leadbox.local"`
	NotifyEmail          string `env:"NOTIFY_EMAIL"`
}

// Enabled reports whether Postmark delivery is configured.
func (c Config) Enabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
