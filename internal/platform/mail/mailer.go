// Copyright (c) 2026 Kaminari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail implements the outbound notification channel for account
lifecycle emails (verification links, password reset links).

Architecture:

  - Sender: The interface consumed by the auth service. Only the intent
    (verify, reset) and the recipient cross this boundary — never SMTP
    details.
  - SMTPSender: Production implementation on top of wneessen/go-mail.
  - LogSender: Development fallback that logs the link instead of sending.

Delivery failures are surfaced to the caller but MUST NOT roll back the
state change that triggered them; the stored token stays valid and can be
redelivered through the resend path.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Sender dispatches account lifecycle notifications.
type Sender interface {

	// SendVerification delivers the email-verification link for a fresh
	// or re-requested registration.
	SendVerification(context context.Context, recipient, token string) error

	// SendPasswordReset delivers the password-reset link.
	SendPasswordReset(context context.Context, recipient, token string) error
}

// # SMTP Implementation

// SMTPConfig carries the connection settings for the production sender.
type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	FrontendURL string
}

// SMTPSender sends account emails through an authenticated SMTP relay.
type SMTPSender struct {
	client      *gomail.Client
	from        string
	frontendURL string
}

// NewSMTPSender builds the production sender. The client is created once
// and reused; go-mail dials per send.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create SMTP client: %w", err)
	}

	return &SMTPSender{
		client:      client,
		from:        cfg.From,
		frontendURL: cfg.FrontendURL,
	}, nil
}

// SendVerification implements [Sender].
func (sender *SMTPSender) SendVerification(context context.Context, recipient, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", sender.frontendURL, token)

	body := fmt.Sprintf(`
		<h1>Welcome to Kaminari!</h1>
		<p>Please click the link below to verify your email:</p>
		<a href="%[1]s">%[1]s</a>
		<p>This link will expire in 24 hours.</p>`, verificationURL)

	return sender.send(context, recipient, "Verify your email", body)
}

// SendPasswordReset implements [Sender].
func (sender *SMTPSender) SendPasswordReset(context context.Context, recipient, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?reset-token=%s", sender.frontendURL, token)

	body := fmt.Sprintf(`
		<h1>Password Reset Request</h1>
		<p>Click the link below to reset your password:</p>
		<a href="%[1]s">%[1]s</a>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this, please ignore this email.</p>`, resetURL)

	return sender.send(context, recipient, "Reset your password", body)
}

// send assembles and dispatches a single HTML message.
func (sender *SMTPSender) send(context context.Context, recipient, subject, htmlBody string) error {
	message := gomail.NewMsg()

	if err := message.From(sender.from); err != nil {
		return fmt.Errorf("mail: invalid from address: %w", err)
	}
	if err := message.To(recipient); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextHTML, htmlBody)

	if err := sender.client.DialAndSendWithContext(context, message); err != nil {
		return fmt.Errorf("mail: delivery failed: %w", err)
	}

	return nil
}

// # Development Fallback

// LogSender writes the would-be email to the structured log. Used when no
// SMTP relay is configured (local development, CI).
type LogSender struct {
	logger      *slog.Logger
	frontendURL string
}

// NewLogSender builds the logging fallback sender.
func NewLogSender(logger *slog.Logger, frontendURL string) *LogSender {
	return &LogSender{logger: logger, frontendURL: frontendURL}
}

// SendVerification implements [Sender].
func (sender *LogSender) SendVerification(context context.Context, recipient, token string) error {
	sender.logger.InfoContext(context, "email_verification_link",
		slog.String("to", recipient),
		slog.String("url", fmt.Sprintf("%s/verify-email?token=%s", sender.frontendURL, token)),
	)
	return nil
}

// SendPasswordReset implements [Sender].
func (sender *LogSender) SendPasswordReset(context context.Context, recipient, token string) error {
	sender.logger.InfoContext(context, "password_reset_link",
		slog.String("to", recipient),
		slog.String("url", fmt.Sprintf("%s/reset-password?reset-token=%s", sender.frontendURL, token)),
	)
	return nil
}
