package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"authbase/internal/middleware"
	"authbase/internal/models"
	"authbase/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary      Current account data
// @Tags         User
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /user/data [get]
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID, found := middleware.UserIDFromContext(c)
	if !found {
		fail(c, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fail(c, "User not found")
			return
		}
		log.Printf("[user][data] error user_id=%s: %v", userID, err)
		fail(c, "Something went wrong, please try again")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		User: &models.UserData{
			Name:              user.Name,
			Email:             user.Email,
			IsAccountVerified: user.IsAccountVerified,
		},
	})
}
