package mailer

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid mailer config")
	ErrInvalidParams     = errors.New("invalid email params")
)
