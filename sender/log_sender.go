package sender

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LogSender writes emails to the logger. Used in development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(_ context.Context, to, subject, body string) (SendResult, error) {
	s.logger.Info("Email (log sender)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return SendResult{MessageID: fmt.Sprintf("log-%d", time.Now().UnixNano()), SentAt: time.Now()}, nil
}
