package service

import (
	"context"
	"feedback_backend/internal/config"
	"feedback_backend/internal/util"
	"feedback_backend/pkg/logger"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// MailSender delivers a plain-text message. Failures are returned to the caller.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

func NewMailSender(cfg config.MailConfig) (MailSender, error) {
	switch cfg.Provider {
	case "", util.MailProviderConsole:
		return &ConsoleMailSender{}, nil
	case util.MailProviderSMTP:
		if cfg.SMTPHost == "" {
			return nil, errors.New("mail.smtp_host is required for the smtp provider")
		}
		return &SMTPMailSender{cfg: cfg}, nil
	case util.MailProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("mail.sendgrid_api_key is required for the sendgrid provider")
		}
		return &SendgridMailSender{
			client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
			from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
	}
}

// ConsoleMailSender writes mail to the log. Used in development.
type ConsoleMailSender struct{}

func (ConsoleMailSender) Send(ctx context.Context, to, subject, body string) error {
	logger.Log.Info("Outgoing email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

type SMTPMailSender struct {
	cfg config.MailConfig
}

func (s *SMTPMailSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := s.cfg.FromAddress
	if from == "" {
		from = s.cfg.SMTPUser
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", s.cfg.FromName, from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		fmt.Sprintf("Date: %s", time.Now().Format(time.RFC1123Z)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	message := strings.Join(headers, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}

type SendgridMailSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func (s *SendgridMailSender) Send(ctx context.Context, to, subject, body string) error {
	m := sgmail.NewSingleEmail(s.from, subject, sgmail.NewEmail("", to), body, "")
	res, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return errors.Wrap(err, "sendgrid send")
	}
	if res.StatusCode >= http.StatusBadRequest {
		return errors.Errorf("sendgrid send: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// VerificationEmail renders the body of the sign-up code mail.
func VerificationEmail(appName, username, code string, ttl time.Duration) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for registering with %s. Please use the following verification code to complete your registration:\n\n"+
			"%s\n\n"+
			"This code expires in %d minutes. If you did not request this code, please ignore this email.\n",
		username, appName, code, int(ttl.Minutes()))
}
