package mail

import (
	"context"

	appidentity "github.com/stocker/backend/internal/application/identity"
	"go.uber.org/zap"
)

// LogSender writes outbound mail to the log instead of delivering it.
// Real delivery is an external collaborator; this keeps the reset flow
// observable in development and tests.
type LogSender struct {
	from   string
	logger *zap.Logger
}

var _ appidentity.MailSender = (*LogSender)(nil)

// NewLogSender creates a logging mail sender
func NewLogSender(from string, logger *zap.Logger) *LogSender {
	return &LogSender{from: from, logger: logger}
}

// SendPasswordReset logs the reset link addressed to the user
func (s *LogSender) SendPasswordReset(_ context.Context, to, resetLink string) error {
	s.logger.Info("password reset mail",
		zap.String("from", s.from),
		zap.String("to", to),
		zap.String("reset_link", resetLink))
	return nil
}
