package service

import (
	"context"

	"github.com/rs/zerolog"
)

// Mailer delivers email. Delivery itself happens outside this system; the
// default implementation just records the attempt so environments without a
// mail relay still work end to end.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type logMailer struct {
	log zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) Mailer {
	return &logMailer{log: logger}
}

func (m *logMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info().Str("to", to).Str("subject", subject).Msg("Email delivery skipped (no mail relay configured)")
	return nil
}
