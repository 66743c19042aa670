package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
	"taskhub/internal/services"
)

type TaskHandler struct {
	service   services.TaskService
	dashboard services.DashboardService

	// assignment notifications, may be nil
	notify *services.NotifyService
	users  repositories.UserRepository
}

func NewTaskHandler(service services.TaskService, dashboard services.DashboardService, notify *services.NotifyService, users repositories.UserRepository) *TaskHandler {
	return &TaskHandler{service: service, dashboard: dashboard, notify: notify, users: users}
}

func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task id"})
		return 0, false
	}
	return id, true
}

// POST /api/tasks  (admin)
func (h *TaskHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	log.Printf("[task][create] call by userID=%d role=%s", userID, roleID)

	var req struct {
		Title         string                 `json:"title" binding:"required"`
		Description   string                 `json:"description"`
		Priority      models.TaskPriority    `json:"priority"`
		DueDate       string                 `json:"dueDate" binding:"required"` // RFC3339
		AssignedTo    []int64                `json:"assignedTo"`
		Attachments   []string               `json:"attachments"`
		TodoChecklist []models.ChecklistItem `json:"todoChecklist"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	due, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		log.Printf("[task][create][err] invalid dueDate=%q: %v", req.DueDate, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dueDate (RFC3339)"})
		return
	}

	task, err := h.service.Create(c.Request.Context(), userID, services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		DueDate:       due,
		AssignedTo:    req.AssignedTo,
		Attachments:   req.Attachments,
		TodoChecklist: req.TodoChecklist,
	})
	if handleServiceError(c, err, "task.create", "Task not found", "forbidden") {
		return
	}
	log.Printf("[task][create][ok] id=%d assignees=%d title=%q", task.ID, len(task.AssignedTo), task.Title)
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})

	h.notifyAssignees(c, task, "📌 New task assigned to you")
}

// GET /api/tasks?status=
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	log.Printf("[task][list] call by userID=%d role=%s q=%v", userID, roleID, c.Request.URL.RawQuery)

	var status *models.TaskStatus
	if v, ok := c.GetQuery("status"); ok && v != "" {
		st := models.TaskStatus(v)
		status = &st
	}

	tasks, summary, err := h.service.List(c.Request.Context(), userID, roleID, status)
	if handleServiceError(c, err, "task.list", "Task not found", "forbidden") {
		return
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, gin.H{
		"tasks":         tasks,
		"statusSummary": summary,
	})
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id)
	if handleServiceError(c, err, "task.get", "Task not found", "forbidden") {
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /api/tasks/:id
//
// Any authenticated caller may hit this; empty scalar fields keep the old
// values and a supplied checklist re-derives progress/status.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	log.Printf("[task][update] call by userID=%d role=%s id=%d", userID, roleID, id)

	var req struct {
		Title         string              `json:"title"`
		Description   string              `json:"description"`
		Priority      models.TaskPriority `json:"priority"`
		Status        models.TaskStatus   `json:"status"`
		DueDate       string              `json:"dueDate"` // RFC3339
		Attachments   json.RawMessage     `json:"attachments"`
		AssignedTo    json.RawMessage     `json:"assignedTo"`
		TodoChecklist json.RawMessage     `json:"todoChecklist"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	in := services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		Attachments:   req.Attachments,
		AssignedTo:    req.AssignedTo,
		TodoChecklist: req.TodoChecklist,
	}
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			log.Printf("[task][update][err] invalid dueDate=%q: %v", req.DueDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dueDate (RFC3339)"})
			return
		}
		in.DueDate = &t
	}

	task, err := h.service.Update(c.Request.Context(), id, in)
	if handleServiceError(c, err, "task.update", "Task not found", "forbidden") {
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "updatedTask": task})

	h.notifyAssignees(c, task, "✏️ Task updated")
}

// DELETE /api/tasks/:id  (admin)
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	log.Printf("[task][delete] call by userID=%d role=%s id=%d", userID, roleID, id)

	if handleServiceError(c, h.service.Delete(c.Request.Context(), id), "task.delete", "Task not found", "forbidden") {
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// PUT /api/tasks/:id/status
//
// Writes status verbatim; progress is left untouched even when the two
// end up inconsistent.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	log.Printf("[task][status] call by userID=%d role=%s id=%d", userID, roleID, id)

	var req struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if handleServiceError(c, err, "task.status", "Task not found", "forbidden") {
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, task.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Task status updated", "task": task})
}

// PUT /api/tasks/:id/todo
func (h *TaskHandler) UpdateChecklist(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	log.Printf("[task][todo] call by userID=%d role=%s id=%d", userID, roleID, id)

	var req struct {
		TodoChecklist json.RawMessage `json:"todoChecklist"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	var checklist []models.ChecklistItem
	if req.TodoChecklist == nil || json.Unmarshal(req.TodoChecklist, &checklist) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "todoChecklist must be an array"})
		return
	}

	task, err := h.service.UpdateChecklist(c.Request.Context(), id, userID, roleID, checklist)
	if handleServiceError(c, err, "task.todo", "Task not found", "Not authorized to update checklist") {
		return
	}
	log.Printf("[task][todo][ok] id=%d progress=%d status=%q", id, task.Progress, task.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Task checklist updated successfully", "task": task})
}

// GET /api/tasks/dashboard-data  (admin view, global)
func (h *TaskHandler) DashboardData(c *gin.Context) {
	data, err := h.dashboard.Overview(c.Request.Context())
	if handleServiceError(c, err, "task.dashboard", "Task not found", "forbidden") {
		return
	}
	c.JSON(http.StatusOK, data)
}

// GET /api/tasks/user-dashboard-data  (scoped to the caller's assignments)
func (h *TaskHandler) UserDashboardData(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	data, err := h.dashboard.UserOverview(c.Request.Context(), userID)
	if handleServiceError(c, err, "task.user-dashboard", "Task not found", "forbidden") {
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *TaskHandler) notifyAssignees(c *gin.Context, task *models.Task, prefix string) {
	if h.notify == nil || h.users == nil || task == nil {
		return
	}
	for _, id := range task.AssignedTo {
		user, err := h.users.GetByID(c.Request.Context(), id)
		if err != nil || user == nil {
			continue
		}
		h.notify.TaskAssigned(user, task, prefix)
	}
}
