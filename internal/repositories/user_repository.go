package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"authbase/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	SetOTP(userID string, purpose models.OTPPurpose, code string, expireAt time.Time) error
	ClearOTP(userID string, purpose models.OTPPurpose) error
	MarkVerified(userID string) error
	UpdatePassword(userID string, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

const userColumns = `
	id, name, email, password_hash, is_account_verified,
	COALESCE(verify_otp, ''), verify_otp_expire_at,
	COALESCE(reset_otp, ''), reset_otp_expire_at
`

func (r *userRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (id, name, email, password_hash, is_account_verified)
		VALUES ($1, $2, $3, $4, FALSE)
	`
	if _, err := r.DB.Exec(q, user.ID, user.Name, user.Email, user.PasswordHash); err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.DB.QueryRow(q, email))
}

// scanOne returns (nil, nil) when no row matches.
func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		verifyExpire sql.NullTime
		resetExpire  sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAccountVerified,
		&u.VerifyOTP, &verifyExpire,
		&u.ResetOTP, &resetExpire,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if verifyExpire.Valid {
		u.VerifyOTPExpireAt = verifyExpire.Time
	}
	if resetExpire.Valid {
		u.ResetOTPExpireAt = resetExpire.Time
	}
	return u, nil
}

func (r *userRepository) SetOTP(userID string, purpose models.OTPPurpose, code string, expireAt time.Time) error {
	q := `UPDATE users SET verify_otp = $2, verify_otp_expire_at = $3 WHERE id = $1`
	if purpose == models.PurposeReset {
		q = `UPDATE users SET reset_otp = $2, reset_otp_expire_at = $3 WHERE id = $1`
	}
	if _, err := r.DB.Exec(q, userID, code, expireAt); err != nil {
		return fmt.Errorf("user set %s otp: %w", purpose, err)
	}
	return nil
}

func (r *userRepository) ClearOTP(userID string, purpose models.OTPPurpose) error {
	q := `UPDATE users SET verify_otp = '', verify_otp_expire_at = NULL WHERE id = $1`
	if purpose == models.PurposeReset {
		q = `UPDATE users SET reset_otp = '', reset_otp_expire_at = NULL WHERE id = $1`
	}
	if _, err := r.DB.Exec(q, userID); err != nil {
		return fmt.Errorf("user clear %s otp: %w", purpose, err)
	}
	return nil
}

func (r *userRepository) MarkVerified(userID string) error {
	if _, err := r.DB.Exec(`UPDATE users SET is_account_verified = TRUE WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user mark verified: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(userID string, passwordHash string) error {
	if _, err := r.DB.Exec(`UPDATE users SET password_hash = $2 WHERE id = $1`, userID, passwordHash); err != nil {
		return fmt.Errorf("user update password: %w", err)
	}
	return nil
}
