package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"authbase/internal/models"
	"authbase/internal/repositories"
)

var (
	ErrCodeInvalid = errors.New("code invalid")
	ErrCodeExpired = errors.New("code expired")
)

const defaultOTPTTL = 10 * time.Minute

// OTPService issues and redeems the short-lived numeric codes gating email
// verification and password reset. One pending code per purpose per account;
// issuing again overwrites it. There is no resend throttling or attempt
// lockout here, a known gap kept as-is.
type OTPService struct {
	Repo    repositories.UserRepository
	Emails  EmailService
	CodeTTL time.Duration // 0 means defaultOTPTTL
}

func NewOTPService(repo repositories.UserRepository, emails EmailService) *OTPService {
	return &OTPService{
		Repo:    repo,
		Emails:  emails,
		CodeTTL: defaultOTPTTL,
	}
}

// 6-digit code, uniform over [100000, 999999]
func (s *OTPService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return strconv.Itoa(100000 + rnd.Intn(900000))
}

func (s *OTPService) ttl() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return defaultOTPTTL
}

// Issue generates a fresh code for the purpose, stores it with its expiry
// (replacing any pending code) and emails it to the account's address.
func (s *OTPService) Issue(user *models.User, purpose models.OTPPurpose) (string, error) {
	code := s.generateCode()
	expireAt := time.Now().Add(s.ttl())

	if err := s.Repo.SetOTP(user.ID, purpose, code, expireAt); err != nil {
		return "", fmt.Errorf("store %s otp: %w", purpose, err)
	}

	var err error
	switch purpose {
	case models.PurposeReset:
		err = s.Emails.SendResetOTPEmail(user.Email, code)
	default:
		err = s.Emails.SendVerifyOTPEmail(user.Email, code)
	}
	if err != nil {
		return "", fmt.Errorf("send %s otp: %w", purpose, err)
	}

	log.Printf("[otp][issue] ok: user_id=%s purpose=%s expires_at=%s", user.ID, purpose, expireAt.Format(time.RFC3339))
	return code, nil
}

// Redeem checks the submitted code against the pending one. Success clears
// the code (single-use); a failed attempt leaves it pending so the caller
// can retry within the window. A cleared or never-issued code is
// ErrCodeInvalid; a correct value past its expiry is still ErrCodeExpired.
func (s *OTPService) Redeem(user *models.User, purpose models.OTPPurpose, submitted string) error {
	pending, expireAt := user.PendingOTP(purpose)
	if pending == "" {
		return ErrCodeInvalid
	}
	if !time.Now().Before(expireAt) {
		return ErrCodeExpired
	}
	if pending != submitted {
		return ErrCodeInvalid
	}

	if err := s.Repo.ClearOTP(user.ID, purpose); err != nil {
		return fmt.Errorf("clear %s otp: %w", purpose, err)
	}
	log.Printf("[otp][redeem] ok: user_id=%s purpose=%s", user.ID, purpose)
	return nil
}
