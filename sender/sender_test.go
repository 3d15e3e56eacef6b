package sender_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/EkeneDeProgram/909ineFoods/models"
	"github.com/EkeneDeProgram/909ineFoods/sender"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	to, subject, body string
	err               error
}

func (r *recordingSender) SendEmail(_ context.Context, to, subject, body string) (sender.SendResult, error) {
	r.to, r.subject, r.body = to, subject, body
	return sender.SendResult{MessageID: "m-1", SentAt: time.Now()}, r.err
}

type fakeQueue struct {
	body string
	err  error
}

func (q *fakeQueue) SendMessage(_ context.Context, body string) error {
	q.body = body
	return q.err
}

func TestCodeMailer_RendersCode(t *testing.T) {
	rec := &recordingSender{}
	m := sender.NewCodeMailer(rec, 15*time.Minute, zap.NewNop())

	require.NoError(t, m.SendVerificationCode(context.Background(), "ada@example.com", "123456"))
	assert.Equal(t, "ada@example.com", rec.to)
	assert.Contains(t, rec.body, "<strong>123456</strong>")
	assert.Contains(t, rec.body, "15 minutes")
}

func TestCodeMailer_SenderFailure(t *testing.T) {
	m := sender.NewCodeMailer(&recordingSender{err: errors.New("smtp down")}, time.Minute, zap.NewNop())
	assert.Error(t, m.SendVerificationCode(context.Background(), "ada@example.com", "123456"))
}

func TestSQSSender_EnqueuesNotification(t *testing.T) {
	q := &fakeQueue{}
	s := sender.NewSQSSender(q)

	res, err := s.SendEmail(context.Background(), "vendor@example.com", "Subject", "<p>hi</p>")
	require.NoError(t, err)
	assert.NotEmpty(t, res.MessageID)

	var msg models.NotificationMessage
	require.NoError(t, json.Unmarshal([]byte(q.body), &msg))
	assert.Equal(t, "email", msg.Channel)
	assert.Equal(t, "vendor@example.com", msg.Recipient)
	assert.Equal(t, "<p>hi</p>", msg.Body)
}

func TestSQSSender_QueueError(t *testing.T) {
	s := sender.NewSQSSender(&fakeQueue{err: errors.New("access denied")})
	_, err := s.SendEmail(context.Background(), "a@b.co", "s", "b")
	assert.Error(t, err)
}

func TestNewSMTPSender_RequiresSettings(t *testing.T) {
	_, err := sender.NewSMTPSender(sender.SMTPConfig{Host: "smtp.example.com", Port: "587"})
	assert.EqualError(t, err, "SMTP_USER not set")

	s, err := sender.NewSMTPSender(sender.SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestLogSender(t *testing.T) {
	res, err := sender.NewLogSender(zap.NewNop()).SendEmail(context.Background(), "a@b.co", "s", "b")
	require.NoError(t, err)
	assert.Contains(t, res.MessageID, "log-")
}
