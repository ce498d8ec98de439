package services

import (
	"context"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type EmailSender interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// LogSender records outgoing mail instead of delivering it.
type LogSender struct {
	Logger log.Logger
}

func (s LogSender) Send(_ context.Context, to string, subject string, _ string) error {
	return level.Info(s.Logger).Log("msg", "email not sent, smtp disabled", "to", to, "subject", subject)
}
