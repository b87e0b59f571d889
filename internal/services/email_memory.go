package services

import "sync"

// SentEmail records one message captured by MemoryEmailService.
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MemoryEmailService is an EmailService that records messages instead of
// sending them. Tests read Sent to assert on delivery; setting Err forces
// every send to fail.
type MemoryEmailService struct {
	mu   sync.Mutex
	Sent []SentEmail
	Err  error
}

func NewMemoryEmailService() *MemoryEmailService {
	return &MemoryEmailService{}
}

func (s *MemoryEmailService) record(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

// Last returns the most recently recorded message, or nil.
func (s *MemoryEmailService) Last() *SentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return nil
	}
	m := s.Sent[len(s.Sent)-1]
	return &m
}

func (s *MemoryEmailService) SendWelcomeEmail(email, name string) error {
	return s.record(email, "Welcome to Our Service", name)
}

func (s *MemoryEmailService) SendVerifyOTPEmail(email, code string) error {
	return s.record(email, "Verify Your Email", code)
}

func (s *MemoryEmailService) SendResetOTPEmail(email, code string) error {
	return s.record(email, "Password Reset OTP", code)
}
