package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /api/users  (admin) — members only, annotated with task counts
func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.service.ListMembers(c.Request.Context())
	if handleServiceError(c, err, "user.list", "User not found", "forbidden") {
		return
	}
	log.Printf("[user][list][ok] count=%d", len(users))
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user ID"})
		return
	}

	user, err := h.service.GetWithTaskCounts(c.Request.Context(), id)
	if handleServiceError(c, err, "user.get", "User not found", "forbidden") {
		return
	}
	c.JSON(http.StatusOK, user)
}
