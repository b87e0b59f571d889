package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"authbase/internal/models"
)

// Every outcome is an HTTP 200 with the envelope; the success flag carries
// the result, never the status code.

func ok(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message})
}

func fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.Response{Success: false, Message: message})
}
