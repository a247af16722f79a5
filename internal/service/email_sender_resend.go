package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"
)

var ErrEmailNotConfigured = errors.New("email sender not configured")

type ResendEmailSender struct {
	Client     *resend.Client
	From       string
	OtpMinutes int
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:     resend.NewClient(apiKey),
		From:       from,
		OtpMinutes: 10,
	}
}

func (s *ResendEmailSender) SendOtp(ctx context.Context, email string, code string) error {
	subject := "Your OTP Code"
	text := fmt.Sprintf("Your OTP code is: %s. It expires in %d minutes.", code, s.otpMinutes())
	body := fmt.Sprintf("<p>Your OTP code is:</p><p><strong>%s</strong></p><p>It expires in %d minutes.</p>", html.EscapeString(code), s.otpMinutes())
	return s.send(ctx, email, subject, body, text)
}

func (s *ResendEmailSender) SendApproval(ctx context.Context, email string) error {
	text := "Your lawyer profile has been approved."
	return s.send(ctx, email, "Lawyer Profile Approved", "<p>"+text+"</p>", text)
}

func (s *ResendEmailSender) SendRejection(ctx context.Context, email string, reason string) error {
	text := fmt.Sprintf("Your lawyer profile was rejected. Reason: %s", reason)
	body := fmt.Sprintf("<p>Your lawyer profile was rejected.</p><p>Reason: %s</p>", html.EscapeString(reason))
	return s.send(ctx, email, "Lawyer Profile Rejected", body, text)
}

func (s *ResendEmailSender) send(ctx context.Context, to string, subject string, htmlBody string, text string) error {
	if s.Client == nil {
		return ErrEmailNotConfigured
	}
	_, err := s.Client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func (s *ResendEmailSender) otpMinutes() int {
	if s.OtpMinutes <= 0 {
		return 10
	}
	return s.OtpMinutes
}
