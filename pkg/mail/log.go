package mail

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// LogSender records messages instead of sending them. Used when SMTP credentials are absent.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender constructs a LogSender.
func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

// Send logs the recipient and subject.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	s.logger.Info("mail not sent, SMTP not configured", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}
