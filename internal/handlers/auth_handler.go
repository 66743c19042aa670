package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
	"taskhub/internal/utils"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedImageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	uploadsDir  string
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, uploadsDir string) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, uploadsDir: uploadsDir}
}

func (h *AuthHandler) userWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		log.Printf("[auth][token][err] userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}
	c.JSON(status, gin.H{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"role":            user.Role,
		"profileImageUrl": user.ProfileImageURL,
		"token":           token,
	})
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		AdminInviteToken string `json:"adminInviteToken"`
		ProfileImageURL  string `json:"profileImageUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	log.Printf("[auth][register] attempt email=%q", req.Email)

	user, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		AdminInviteToken: req.AdminInviteToken,
		ProfileImageURL:  req.ProfileImageURL,
	})
	if handleServiceError(c, err, "auth.register", "User not found", "forbidden") {
		return
	}
	log.Printf("[auth][register][ok] userID=%d role=%s", user.ID, user.Role)
	h.userWithToken(c, http.StatusCreated, user)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.userService.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			log.Printf("[auth][login][deny] email=%q", email)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		log.Printf("[auth][login][err] email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	log.Printf("[auth][login][ok] userID=%d role=%s", user.ID, user.Role)
	h.userWithToken(c, http.StatusOK, user)
}

// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if handleServiceError(c, err, "auth.profile", "User not found", "forbidden") {
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		TelegramChatID int64  `json:"telegramChatId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdateInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		TelegramChatID: req.TelegramChatID,
	})
	if handleServiceError(c, err, "auth.profile.update", "User not found", "forbidden") {
		return
	}
	log.Printf("[auth][profile][ok] userID=%d", userID)
	c.JSON(http.StatusOK, user)
}

// POST /api/auth/upload-image
func (h *AuthHandler) UploadImage(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No image uploaded"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image exceeds the 5MB size limit"})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	mime := file.Header.Get("Content-Type")
	if !allowedImageExts[ext] || !allowedImageMIMEs[mime] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed (jpg, jpeg, png, webp)"})
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		log.Printf("[auth][upload][err] mkdir %s: %v", h.uploadsDir, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	name := utils.UploadFilename(file.Filename)
	dst := filepath.Join(h.uploadsDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.Printf("[auth][upload][err] save %s: %v", dst, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	url := "/uploads/" + name
	user, err := h.userService.SetProfileImage(c.Request.Context(), userID, url)
	if handleServiceError(c, err, "auth.upload", "User not found", "forbidden") {
		return
	}
	log.Printf("[auth][upload][ok] userID=%d file=%s", userID, name)
	c.JSON(http.StatusOK, gin.H{
		"message":         "Image uploaded successfully",
		"profileImageUrl": user.ProfileImageURL,
	})
}
