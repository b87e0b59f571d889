package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, name string) error
	SendVerifyOTPEmail(email, code string) error
	SendResetOTPEmail(email, code string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send %q email: %w", subject, err)
	}
	return nil
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Thank you for registering! Your account has been created successfully with email: <strong>%s</strong>.</p>
	`, name, email)
	return s.send(email, "Welcome to Our Service", body)
}

func (s *emailService) SendVerifyOTPEmail(email, code string) error {
	body := fmt.Sprintf(`<p>Your OTP is <strong>%s</strong>. It is valid for 10 minutes.</p>`, code)
	return s.send(email, "Verify Your Email", body)
}

func (s *emailService) SendResetOTPEmail(email, code string) error {
	body := fmt.Sprintf(`<p>Your OTP is <strong>%s</strong>. It is valid for 10 minutes.</p>`, code)
	return s.send(email, "Password Reset OTP", body)
}
