package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/google/uuid"
)

// SQSSender hands emails to the notification worker through its queue
// instead of talking SMTP in the request path.
type SQSSender struct {
	queue aws_pkg.QueueSender
}

func NewSQSSender(queue aws_pkg.QueueSender) *SQSSender {
	return &SQSSender{queue: queue}
}

func (s *SQSSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	now := time.Now().UTC()
	msg := models.NotificationMessage{
		Type:      "verification_code",
		Channel:   "email",
		Recipient: to,
		Subject:   subject,
		Body:      body,
		CreatedAt: now,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return SendResult{}, fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.queue.SendMessage(ctx, string(b)); err != nil {
		return SendResult{}, err
	}
	return SendResult{MessageID: "sqs-" + uuid.NewString(), SentAt: now}, nil
}
