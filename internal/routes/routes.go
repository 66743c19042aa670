package routes

import (
	"github.com/gin-gonic/gin"

	"taskhub/internal/handlers"
	"taskhub/internal/middleware"
)

// SetupRoutes wires the HTTP surface. Paths are part of the public
// contract and must not change.
func SetupRoutes(
	r *gin.Engine,
	jwtSecret string,
	uploadsDir string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// uploaded profile images are served back statically
	r.Static("/uploads", uploadsDir)

	auth := middleware.AuthMiddleware([]byte(jwtSecret))
	adminOnly := middleware.RequireAdmin()

	// AUTH
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/profile", auth, authHandler.GetProfile)
		authGroup.PUT("/profile", auth, authHandler.UpdateProfile)
		authGroup.POST("/upload-image", auth, authHandler.UploadImage)
	}

	// TASKS
	tasks := r.Group("/api/tasks", auth)
	{
		tasks.GET("/dashboard-data", taskHandler.DashboardData)
		tasks.GET("/user-dashboard-data", taskHandler.UserDashboardData)
		tasks.GET("", taskHandler.GetAll)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.POST("", adminOnly, taskHandler.Create)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", adminOnly, taskHandler.Delete)
		tasks.PUT("/:id/status", taskHandler.UpdateStatus)
		tasks.PUT("/:id/todo", taskHandler.UpdateChecklist)
	}

	// USERS
	users := r.Group("/api/users", auth)
	{
		users.GET("", adminOnly, userHandler.GetUsers)
		users.GET("/:id", userHandler.GetUserByID)
	}

	// REPORTS (admin)
	reports := r.Group("/api/reports", auth, adminOnly)
	{
		reports.GET("/export/tasks", reportHandler.ExportTasks)
		reports.GET("/export/users", reportHandler.ExportUsers)
	}

	return r
}
