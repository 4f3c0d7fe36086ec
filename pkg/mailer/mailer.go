package mailer

import (
	"context"
	"fmt"

	"erp-backend/pkg/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a log-only mailer when no SMTP host is configured.
func New(config utils.EmailConfig, log *zap.Logger) (Mailer, error) {
	if config.Host == "" {
		log.Warn("SMTP host not configured, account emails are written to the log")
		return NewLogMailer(log), nil
	}
	return NewSMTPMailer(config, log)
}

type smtpMailer struct {
	client *mail.Client
	from   string
	log    *zap.Logger
}

func NewSMTPMailer(config utils.EmailConfig, log *zap.Logger) (Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(config.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if config.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(config.User),
			mail.WithPassword(config.Password),
		)
	}

	client, err := mail.NewClient(config.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &smtpMailer{
		client: client,
		from:   config.From,
		log:    log.With(zap.String("component", "mailer")),
	}, nil
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("set from address %q: %w", m.from, err)
	}
	if err := message.To(msg.To); err != nil {
		return fmt.Errorf("set recipient %q: %w", msg.To, err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.client.DialAndSendWithContext(ctx, message); err != nil {
		m.log.Error("Failed to send email", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	m.log.Info("Email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type logMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log.With(zap.String("component", "mailer"))}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Email (not sent, SMTP disabled)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
