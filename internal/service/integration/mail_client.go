package integration

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/codewatch/exam-service/internal/config"
)

type MailClient interface {
	SendPasswordReset(ctx context.Context, recipient, token string) error
}

type mailClient struct {
	client   *mail.Client
	from     string
	resetURL string
	logger   zerolog.Logger
}

func NewMailClient(cfg config.MailConfig, logger zerolog.Logger) (MailClient, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(cfg.Timeout),
	}

	// Implicit SSL (usually port 465) vs STARTTLS (usually port 587).
	if cfg.UseSSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &mailClient{
		client:   client,
		from:     cfg.From,
		resetURL: cfg.ResetURL,
		logger:   logger,
	}, nil
}

func (c *mailClient) SendPasswordReset(ctx context.Context, recipient, token string) error {
	params := url.Values{"token": {token}}
	resetLink := c.resetURL + "?" + params.Encode()

	msg := mail.NewMsg()
	if err := msg.From(c.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject("CodeWatch password reset")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Hi,\n\n"+
			"You (or someone using this email) requested a password reset for CodeWatch.\n\n"+
			"Click the link below to reset your password (valid for a short time):\n\n"+
			"%s\n\n"+
			"If you did not request this, ignore this email.\n\n"+
			"CodeWatch", resetLink))

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	c.logger.Info().Str("recipient", recipient).Msg("Reset email sent")
	return nil
}
