package sender

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"go.uber.org/zap"
)

// CodeNotifier delivers one-time verification codes.
type CodeNotifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

const verificationSubject = "Your 909ineFoods verification code"

var verificationTmpl = template.Must(template.New("verification").Parse(
	`<p>Your verification code is <strong>{{.Code}}</strong>.</p>` +
		`<p>It expires in {{.Minutes}} minutes and can be used once.</p>`,
))

// CodeMailer renders the verification email and sends it through an EmailSender.
type CodeMailer struct {
	sender  EmailSender
	codeTTL time.Duration
	logger  *zap.Logger
}

func NewCodeMailer(sender EmailSender, codeTTL time.Duration, logger *zap.Logger) *CodeMailer {
	return &CodeMailer{sender: sender, codeTTL: codeTTL, logger: logger}
}

func (m *CodeMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	var body bytes.Buffer
	err := verificationTmpl.Execute(&body, struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: int(m.codeTTL.Minutes())})
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	res, err := m.sender.SendEmail(ctx, email, verificationSubject, body.String())
	if err != nil {
		return err
	}
	m.logger.Info("Verification code dispatched",
		zap.String("recipient", email),
		zap.String("message_id", res.MessageID),
	)
	return nil
}
