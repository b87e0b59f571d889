package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"authbase/internal/auth"
	"authbase/internal/models"
)

// ContextUserID is the gin context key the resolved account identifier is
// stored under for downstream handlers.
const ContextUserID = "user_id"

// SessionMiddleware reads the session cookie, verifies the token and puts
// the account identifier into the request context. Failures short-circuit
// with the uniform envelope; downstream logic is never invoked and no
// identifier is attached.
func SessionMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("token")
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusOK, models.Response{Success: false, Message: "Unauthorized"})
			return
		}

		userID, err := auth.VerifyToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, models.Response{Success: false, Message: "Unauthorized, login again"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserIDFromContext returns the identifier attached by SessionMiddleware.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
