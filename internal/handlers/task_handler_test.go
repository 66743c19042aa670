package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

// stubTaskService scripts each operation with a function field.
type stubTaskService struct {
	create          func(creatorID int64, in services.CreateTaskInput) (*models.Task, error)
	getByID         func(id int64) (*models.TaskDetail, error)
	list            func(userID int64, role models.UserRole, status *models.TaskStatus) ([]models.TaskListItem, models.StatusSummary, error)
	update          func(id int64, in services.UpdateTaskInput) (*models.Task, error)
	updateStatus    func(id int64, status models.TaskStatus) (*models.Task, error)
	updateChecklist func(id, userID int64, role models.UserRole, checklist []models.ChecklistItem) (*models.TaskDetail, error)
	delete          func(id int64) error
}

func (s *stubTaskService) Create(_ context.Context, creatorID int64, in services.CreateTaskInput) (*models.Task, error) {
	return s.create(creatorID, in)
}

func (s *stubTaskService) GetByID(_ context.Context, id int64) (*models.TaskDetail, error) {
	return s.getByID(id)
}

func (s *stubTaskService) List(_ context.Context, userID int64, role models.UserRole, status *models.TaskStatus) ([]models.TaskListItem, models.StatusSummary, error) {
	return s.list(userID, role, status)
}

func (s *stubTaskService) Update(_ context.Context, id int64, in services.UpdateTaskInput) (*models.Task, error) {
	return s.update(id, in)
}

func (s *stubTaskService) UpdateStatus(_ context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	return s.updateStatus(id, status)
}

func (s *stubTaskService) UpdateChecklist(_ context.Context, id, userID int64, role models.UserRole, checklist []models.ChecklistItem) (*models.TaskDetail, error) {
	return s.updateChecklist(id, userID, role, checklist)
}

func (s *stubTaskService) Delete(_ context.Context, id int64) error {
	return s.delete(id)
}

func taskTestRouter(svc services.TaskService, userID int64, role models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	identity := func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
	}
	h := NewTaskHandler(svc, nil, nil, nil)
	r.POST("/api/tasks", identity, h.Create)
	r.GET("/api/tasks", identity, h.GetAll)
	r.PUT("/api/tasks/:id", identity, h.Update)
	r.PUT("/api/tasks/:id/status", identity, h.UpdateStatus)
	r.PUT("/api/tasks/:id/todo", identity, h.UpdateChecklist)
	r.DELETE("/api/tasks/:id", identity, h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateHandler(t *testing.T) {
	svc := &stubTaskService{
		create: func(creatorID int64, in services.CreateTaskInput) (*models.Task, error) {
			if creatorID != 1 {
				t.Errorf("creatorID = %d, want 1", creatorID)
			}
			return &models.Task{ID: 11, Title: in.Title, Status: models.StatusPending, DueDate: in.DueDate}, nil
		},
	}
	r := taskTestRouter(svc, 1, models.RoleAdmin)

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"ship it","dueDate":"2026-09-10T00:00:00Z"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Task created successfully") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestCreateHandlerRejectsBadDueDate(t *testing.T) {
	r := taskTestRouter(&stubTaskService{}, 1, models.RoleAdmin)

	w := doJSON(r, http.MethodPost, "/api/tasks", `{"title":"x","dueDate":"tomorrow"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAllHandlerResponseShape(t *testing.T) {
	svc := &stubTaskService{
		list: func(userID int64, role models.UserRole, status *models.TaskStatus) ([]models.TaskListItem, models.StatusSummary, error) {
			if status == nil || *status != models.StatusPending {
				t.Errorf("status filter = %v, want Pending", status)
			}
			item := models.TaskListItem{
				Task:               models.Task{ID: 3, Title: "t", Status: models.StatusPending, DueDate: time.Now()},
				AssignedTo:         []models.UserRef{},
				CompletedTodoCount: 2,
			}
			return []models.TaskListItem{item}, models.StatusSummary{All: 5, PendingTasks: 1}, nil
		},
	}
	r := taskTestRouter(svc, 2, models.RoleMember)

	w := doJSON(r, http.MethodGet, "/api/tasks?status=Pending", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"tasks"`, `"statusSummary"`, `"completedTodoCount":2`, `"all":5`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}

func TestUpdateHandlerValidationMessage(t *testing.T) {
	svc := &stubTaskService{
		update: func(id int64, in services.UpdateTaskInput) (*models.Task, error) {
			return nil, &services.ValidationError{Message: "assignedTo must be an array of user IDs"}
		},
	}
	r := taskTestRouter(svc, 2, models.RoleMember)

	w := doJSON(r, http.MethodPut, "/api/tasks/3", `{"assignedTo":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "assignedTo must be an array of user IDs") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestUpdateChecklistHandler(t *testing.T) {
	svc := &stubTaskService{
		updateChecklist: func(id, userID int64, role models.UserRole, checklist []models.ChecklistItem) (*models.TaskDetail, error) {
			return nil, services.ErrForbidden
		},
	}
	r := taskTestRouter(svc, 9, models.RoleMember)

	w := doJSON(r, http.MethodPut, "/api/tasks/3/todo", `{"todoChecklist":[{"text":"a","completed":true}]}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Not authorized to update checklist") {
		t.Errorf("body = %s", w.Body.String())
	}

	// a non-array checklist never reaches the service
	w = doJSON(r, http.MethodPut, "/api/tasks/3/todo", `{"todoChecklist":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "todoChecklist must be an array") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDeleteHandlerNotFound(t *testing.T) {
	svc := &stubTaskService{
		delete: func(id int64) error { return services.ErrNotFound },
	}
	r := taskTestRouter(svc, 1, models.RoleAdmin)

	w := doJSON(r, http.MethodDelete, "/api/tasks/404", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Task not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &stubTaskService{
		updateStatus: func(id int64, status models.TaskStatus) (*models.Task, error) {
			return &models.Task{ID: id, Status: status, Progress: 100}, nil
		},
	}
	r := taskTestRouter(svc, 2, models.RoleMember)

	w := doJSON(r, http.MethodPut, "/api/tasks/7/status", `{"status":"Pending"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"progress":100`) || !strings.Contains(body, `"status":"Pending"`) {
		t.Errorf("body = %s", body)
	}
}
