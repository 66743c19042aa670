package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

func getUserAndRole(c *gin.Context) (userID int64, role models.UserRole) {
	if v, ok := c.Get("user_id"); ok {
		switch t := v.(type) {
		case int64:
			userID = t
		case int:
			userID = int64(t)
		case float64:
			userID = int64(t)
		}
	}
	if v, ok := c.Get("role"); ok {
		if r, ok := v.(models.UserRole); ok {
			role = r
		}
	}
	return
}

// handleServiceError maps the service error taxonomy onto HTTP responses
// and reports whether it wrote one. Store failures are logged and
// surfaced as a generic 500.
func handleServiceError(c *gin.Context, err error, area, notFoundMsg, forbiddenMsg string) bool {
	if err == nil {
		return false
	}
	if msg, ok := services.ValidationMessage(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return true
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
		return true
	}
	if errors.Is(err, services.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"message": forbiddenMsg})
		return true
	}
	log.Printf("[%s][err] %v", area, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	return true
}
