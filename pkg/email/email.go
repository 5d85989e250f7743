package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no provider API key is set.
var ErrNotConfigured = errors.New("email provider not configured")

// Attachment is a file sent along with a message.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single outbound email.
type Message struct {
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers messages and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Config holds the sending identity
type Config struct {
	APIKey    string
	FromName  string
	FromEmail string
	ReplyTo   string
}

// ResendSender delivers mail through the Resend API
type ResendSender struct {
	client *resend.Client
	config Config
	log    *zap.Logger
}

// NewResendSender creates a sender. With an empty API key every Send fails with ErrNotConfigured.
func NewResendSender(cfg Config, log *zap.Logger) *ResendSender {
	s := &ResendSender{config: cfg, log: log.Named("email")}
	if cfg.APIKey != "" {
		s.client = resend.NewClient(cfg.APIKey)
	}
	return s
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.client == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	replyTo := msg.ReplyTo
	if replyTo == "" {
		replyTo = s.config.ReplyTo
	}

	request := &resend.SendEmailRequest{
		From:    s.from(),
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: replyTo,
	}
	for _, a := range msg.Attachments {
		request.Attachments = append(request.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	result, err := s.client.Emails.Send(request)
	if err != nil {
		s.log.Warn("Email delivery failed", zap.Strings("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		return "", fmt.Errorf("resend: %w", err)
	}

	s.log.Info("Email sent", zap.String("email_id", result.Id), zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
	return result.Id, nil
}

func (s *ResendSender) from() string {
	if s.config.FromName == "" {
		return s.config.FromEmail
	}
	return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
}
