package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"authbase/internal/auth"
	"authbase/internal/middleware"
	"authbase/internal/models"
	"authbase/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	jwtSecret   []byte
	environment string
}

func NewAuthHandler(userService services.UserService, jwtSecret []byte, environment string) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		environment: environment,
	}
}

// Secure and cross-site cookies only in production; strict same-site
// elsewhere so local development over plain HTTP keeps working.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	secure := h.environment == "production"
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie("token", token, int(auth.TokenTTL.Seconds()), "/", "", secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	secure := h.environment == "production"
	if secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteStrictMode)
	}
	c.SetCookie("token", "", -1, "/", "", secure, true)
}

func (h *AuthHandler) issueSession(c *gin.Context, userID string) bool {
	token, err := auth.IssueToken(userID, h.jwtSecret, auth.TokenTTL)
	if err != nil {
		log.Printf("[auth][token] sign failed for user_id=%s: %v", userID, err)
		fail(c, "Something went wrong, please try again")
		return false
	}
	h.setSessionCookie(c, token)
	return true
}

// @Summary      Register a new account
// @Description  Creates an account, sets the session cookie and sends a welcome email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Registration details"
// @Success      200   {object}  models.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Missing Details")
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			fail(c, "User already exists")
			return
		}
		log.Printf("[auth][register] error: %v", err)
		fail(c, "Something went wrong, please try again")
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true})
}

// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Credentials"
// @Success      200   {object}  models.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Missing Details")
		return
	}

	user, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, "Invalid email or password")
			return
		}
		log.Printf("[auth][login] error: %v", err)
		fail(c, "Something went wrong, please try again")
		return
	}

	if !h.issueSession(c, user.ID) {
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true})
}

// @Summary      Log out
// @Description  Clears the session cookie; the token itself stays valid until expiry
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	ok(c, "Logged Out")
}

// @Summary      Send email verification OTP
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /auth/send-verify-otp [post]
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	userID, found := middleware.UserIDFromContext(c)
	if !found {
		fail(c, "Unauthorized")
		return
	}

	if err := h.userService.SendVerifyOTP(userID); err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVerified):
			fail(c, "Account already verified")
		case errors.Is(err, services.ErrNotFound):
			fail(c, "User not found")
		default:
			log.Printf("[auth][send-verify-otp] error user_id=%s: %v", userID, err)
			fail(c, "Something went wrong, please try again")
		}
		return
	}
	ok(c, "OTP sent to email")
}

// @Summary      Verify the account email
// @Description  Redeems the verification OTP; invalid and expired codes report the same message
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyAccountRequest  true  "Submitted OTP"
// @Success      200   {object}  models.Response
// @Router       /auth/verify-account [post]
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	userID, found := middleware.UserIDFromContext(c)
	if !found {
		fail(c, "Unauthorized")
		return
	}

	var req models.VerifyAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Missing Details")
		return
	}

	if err := h.userService.VerifyEmail(userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, services.ErrCodeInvalid), errors.Is(err, services.ErrCodeExpired):
			fail(c, "Invalid or expired OTP")
		case errors.Is(err, services.ErrNotFound):
			fail(c, "User not found")
		default:
			log.Printf("[auth][verify-account] error user_id=%s: %v", userID, err)
			fail(c, "Something went wrong, please try again")
		}
		return
	}
	ok(c, "Email verified successfully")
}

// @Summary      Check session validity
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /auth/is-auth [get]
func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{Success: true})
}

// @Summary      Send password reset OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.SendResetOTPRequest  true  "Account email"
// @Success      200   {object}  models.Response
// @Router       /auth/send-reset-otp [post]
func (h *AuthHandler) SendResetOTP(c *gin.Context) {
	var req models.SendResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Email is required")
		return
	}

	if err := h.userService.SendResetOTP(req.Email); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, "User not found")
			return
		}
		log.Printf("[auth][send-reset-otp] error: %v", err)
		fail(c, "Something went wrong, please try again")
		return
	}
	ok(c, "OTP sent to your email")
}

// @Summary      Reset the password
// @Description  Redeems the reset OTP; invalid and expired codes are reported separately
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ResetPasswordRequest  true  "Email, OTP and new password"
// @Success      200   {object}  models.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "Email, OTP and new password are required")
		return
	}

	if err := h.userService.ResetPassword(req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			fail(c, "User not found")
		case errors.Is(err, services.ErrCodeInvalid):
			fail(c, "Invalid OTP")
		case errors.Is(err, services.ErrCodeExpired):
			fail(c, "Expired OTP")
		default:
			log.Printf("[auth][reset-password] error: %v", err)
			fail(c, "Something went wrong, please try again")
		}
		return
	}
	ok(c, "Password reset successfully")
}
