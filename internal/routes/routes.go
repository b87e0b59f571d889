package routes

import (
	"github.com/gin-gonic/gin"

	"authbase/internal/handlers"
	"authbase/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jwtSecret []byte,
) *gin.Engine {
	session := middleware.SessionMiddleware(jwtSecret)

	api := r.Group("/api")

	// ---- auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/send-reset-otp", authHandler.SendResetOTP)
		auth.POST("/reset-password", authHandler.ResetPassword)

		auth.POST("/send-verify-otp", session, authHandler.SendVerifyOTP)
		auth.POST("/verify-account", session, authHandler.VerifyAccount)
		auth.GET("/is-auth", session, authHandler.IsAuthenticated)
	}

	// ---- user
	user := api.Group("/user", session)
	{
		user.GET("/data", userHandler.GetUserData)
	}

	return r
}
