package models

import "time"

// OTPPurpose selects which pending code on the account a send/redeem
// operation works with. Each purpose holds at most one active code.
type OTPPurpose string

const (
	PurposeVerify OTPPurpose = "verify"
	PurposeReset  OTPPurpose = "reset"
)

type User struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	IsAccountVerified bool      `json:"isAccountVerified"`
	VerifyOTP         string    `json:"-"`
	VerifyOTPExpireAt time.Time `json:"-"`
	ResetOTP          string    `json:"-"`
	ResetOTPExpireAt  time.Time `json:"-"`
}

// PendingOTP returns the stored code and expiry for the given purpose.
func (u *User) PendingOTP(purpose OTPPurpose) (code string, expireAt time.Time) {
	if purpose == PurposeReset {
		return u.ResetOTP, u.ResetOTPExpireAt
	}
	return u.VerifyOTP, u.VerifyOTPExpireAt
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type VerifyAccountRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type SendResetOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// UserData is the public projection returned by GET /api/user/data.
type UserData struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// Response is the uniform envelope for every endpoint. Failures carry
// success=false with a message; the HTTP status stays 200.
type Response struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	User    *UserData `json:"user,omitempty"`
}
