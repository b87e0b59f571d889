package services

import (
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	ComparePassword(hash, plain string) bool
}

type authService struct {
	cost int
}

func NewAuthService() AuthService {
	return &authService{cost: 10}
}

func (s *authService) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *authService) ComparePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
