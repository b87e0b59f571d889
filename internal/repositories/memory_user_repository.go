package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"authbase/internal/models"
)

// MemoryUserRepository is an in-memory UserRepository used by tests and
// local experiments. Records are copied on the way in and out so callers
// never alias the stored state.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) SetOTP(userID string, purpose models.OTPPurpose, code string, expireAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	if purpose == models.PurposeReset {
		u.ResetOTP = code
		u.ResetOTPExpireAt = expireAt
	} else {
		u.VerifyOTP = code
		u.VerifyOTPExpireAt = expireAt
	}
	return nil
}

func (r *MemoryUserRepository) ClearOTP(userID string, purpose models.OTPPurpose) error {
	return r.SetOTP(userID, purpose, "", time.Time{})
}

func (r *MemoryUserRepository) MarkVerified(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.IsAccountVerified = true
	}
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(userID string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}
