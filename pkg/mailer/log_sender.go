package mailer

import (
	"context"
	"log/slog"
)

// LogSender implements EmailSender for local development: instead of
// delivering email it records the send as a structured log line.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a sender that only logs.
func NewLogSender(log *slog.Logger) EmailSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email send skipped (no mailer configured)",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
	)
	return nil
}
