package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"authbase/internal/models"
	"authbase/internal/repositories"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrNotFound           = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService interface {
	Register(name, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	SendVerifyOTP(userID string) error
	VerifyEmail(userID, code string) error
	SendResetOTP(email string) error
	ResetPassword(email, code, newPassword string) error
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
	otpService   *OTPService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService, otpService *OTPService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
		otpService:   otpService,
	}
}

func (s *userService) Register(name, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	// The account exists at this point; a failed welcome email must not
	// undo the registration.
	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("[auth][register] warning: welcome email to %s failed: %v", user.Email, err)
		}
	}

	log.Printf("[auth][register] success user_id=%s", user.ID)
	return user, nil
}

func (s *userService) Login(email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Printf("[auth][login] unknown email=%q", email)
		return nil, ErrInvalidCredentials
	}
	if !s.authService.ComparePassword(user.PasswordHash, password) {
		log.Printf("[auth][login] password mismatch user_id=%s", user.ID)
		return nil, ErrInvalidCredentials
	}
	log.Printf("[auth][login] success user_id=%s", user.ID)
	return user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userService) SendVerifyOTP(userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.IsAccountVerified {
		return ErrAlreadyVerified
	}
	if _, err := s.otpService.Issue(user, models.PurposeVerify); err != nil {
		return err
	}
	return nil
}

func (s *userService) VerifyEmail(userID, code string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := s.otpService.Redeem(user, models.PurposeVerify, code); err != nil {
		return err
	}
	if err := s.repo.MarkVerified(user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	log.Printf("[auth][verify] account verified user_id=%s", user.ID)
	return nil
}

func (s *userService) SendResetOTP(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if _, err := s.otpService.Issue(user, models.PurposeReset); err != nil {
		return err
	}
	return nil
}

func (s *userService) ResetPassword(email, code, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.otpService.Redeem(user, models.PurposeReset, code); err != nil {
		return err
	}

	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[auth][reset] password reset user_id=%s", user.ID)
	return nil
}
