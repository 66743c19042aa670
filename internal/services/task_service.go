package services

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"taskhub/internal/authz"
	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

// CreateTaskInput carries the fields of a task creation. The route's admin
// gate has already run by the time the service sees it.
type CreateTaskInput struct {
	Title         string
	Description   string
	Priority      models.TaskPriority
	DueDate       time.Time
	AssignedTo    []int64
	Attachments   []string
	TodoChecklist []models.ChecklistItem
}

// UpdateTaskInput carries the optional fields of a full update. Empty
// scalar strings mean "keep the old value". The raw array fields keep
// absent / malformed / supplied distinguishable: a JSON null counts as
// absent, a non-array assignedTo is a validation error, a non-array
// attachments or todoChecklist is silently ignored.
type UpdateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	Status      models.TaskStatus
	DueDate     *time.Time

	Attachments   json.RawMessage
	AssignedTo    json.RawMessage
	TodoChecklist json.RawMessage
}

// TaskService owns the task lifecycle: creation, mutation, the
// checklist-driven progress/status derivation and the per-operation
// ownership rules. Note the asymmetry, kept on purpose: only
// UpdateChecklist enforces the assignee-or-admin gate; Update and
// UpdateStatus accept any authenticated caller.
type TaskService interface {
	Create(ctx context.Context, creatorID int64, in CreateTaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.TaskDetail, error)
	List(ctx context.Context, userID int64, role models.UserRole, status *models.TaskStatus) ([]models.TaskListItem, models.StatusSummary, error)
	Update(ctx context.Context, id int64, in UpdateTaskInput) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)
	UpdateChecklist(ctx context.Context, id, userID int64, role models.UserRole, checklist []models.ChecklistItem) (*models.TaskDetail, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	repo  repositories.TaskRepository
	users repositories.UserRepository
}

func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository) TaskService {
	return &taskService{repo: repo, users: users}
}

func (s *taskService) Create(ctx context.Context, creatorID int64, in CreateTaskInput) (*models.Task, error) {
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !models.IsValidPriority(in.Priority) {
		return nil, validation("invalid priority")
	}
	if in.AssignedTo == nil {
		in.AssignedTo = []int64{}
	}
	if in.Attachments == nil {
		in.Attachments = []string{}
	}
	if in.TodoChecklist == nil {
		in.TodoChecklist = []models.ChecklistItem{}
	}

	now := time.Now()
	task := &models.Task{
		Title:         in.Title,
		Description:   in.Description,
		Priority:      in.Priority,
		Status:        models.StatusPending,
		DueDate:       in.DueDate,
		AssignedTo:    in.AssignedTo,
		CreatedBy:     creatorID,
		Attachments:   in.Attachments,
		TodoChecklist: in.TodoChecklist,
		Progress:      0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.TaskDetail, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	assignees, err := s.users.GetRefs(ctx, task.AssignedTo)
	if err != nil {
		return nil, err
	}
	creators, err := s.users.GetRefs(ctx, []int64{task.CreatedBy})
	if err != nil {
		return nil, err
	}
	detail := &models.TaskDetail{Task: *task, AssignedTo: assignees}
	if len(creators) > 0 {
		detail.CreatedBy = &creators[0]
	}
	return detail, nil
}

func (s *taskService) List(ctx context.Context, userID int64, role models.UserRole, status *models.TaskStatus) ([]models.TaskListItem, models.StatusSummary, error) {
	var summary models.StatusSummary

	scope := models.TaskFilter{}
	if !authz.IsAdmin(role) {
		scope.AssigneeID = &userID
	}

	listFilter := scope
	if status != nil {
		listFilter.Statuses = []models.TaskStatus{*status}
	}
	tasks, err := s.repo.FindAll(ctx, listFilter)
	if err != nil {
		return nil, summary, err
	}

	// one lookup for every assignee referenced by the page
	refs, err := s.assigneeRefs(ctx, tasks)
	if err != nil {
		return nil, summary, err
	}

	items := make([]models.TaskListItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, models.TaskListItem{
			Task:               t,
			AssignedTo:         pickRefs(refs, t.AssignedTo),
			CompletedTodoCount: t.CompletedTodoCount(),
		})
	}

	// "all" ignores the status filter; the per-status buckets stack the
	// caller's filter on top of their own status, so an active mismatched
	// filter zeroes them.
	if summary.All, err = s.repo.Count(ctx, scope); err != nil {
		return nil, summary, err
	}
	bucket := func(st models.TaskStatus) (int, error) {
		f := scope
		if status != nil {
			f.Statuses = append(f.Statuses, *status)
		}
		f.Statuses = append(f.Statuses, st)
		return s.repo.Count(ctx, f)
	}
	if summary.PendingTasks, err = bucket(models.StatusPending); err != nil {
		return nil, summary, err
	}
	if summary.InProgressTasks, err = bucket(models.StatusInProgress); err != nil {
		return nil, summary, err
	}
	if summary.CompletedTasks, err = bucket(models.StatusCompleted); err != nil {
		return nil, summary, err
	}

	return items, summary, nil
}

func (s *taskService) Update(ctx context.Context, id int64, in UpdateTaskInput) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Priority != "" {
		if !models.IsValidPriority(in.Priority) {
			return nil, validation("invalid priority")
		}
		task.Priority = in.Priority
	}
	if in.Status != "" {
		if !models.IsValidStatus(in.Status) {
			return nil, validation("invalid status")
		}
		task.Status = in.Status
	}
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}
	if rawPresent(in.Attachments) {
		var attachments []string
		if err := json.Unmarshal(in.Attachments, &attachments); err == nil {
			task.Attachments = attachments
		}
	}
	if rawPresent(in.AssignedTo) {
		var ids []int64
		if err := json.Unmarshal(in.AssignedTo, &ids); err != nil {
			return nil, validation("assignedTo must be an array of user IDs")
		}
		task.AssignedTo = ids
	}
	if rawPresent(in.TodoChecklist) {
		var items []models.ChecklistItem
		if err := json.Unmarshal(in.TodoChecklist, &items); err == nil {
			// wholesale replacement; a directly supplied status is
			// overridden by the derivation when a checklist is present
			task.TodoChecklist = items
			task.RecalcProgress()
		}
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// rawPresent reports whether a raw update field carries a real value.
// A JSON null counts as absent and keeps the old value, the same
// coalescing rule the scalar fields follow.
func rawPresent(r json.RawMessage) bool {
	return len(r) > 0 && !bytes.Equal(bytes.TrimSpace(r), []byte("null"))
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	// status is written verbatim; progress and the checklist are never
	// touched here, even when the result contradicts the completion ratio
	if status != "" {
		if !models.IsValidStatus(status) {
			return nil, validation("invalid status")
		}
		task.Status = status
	}

	task.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateChecklist(ctx context.Context, id, userID int64, role models.UserRole, checklist []models.ChecklistItem) (*models.TaskDetail, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if !authz.CanTouchChecklist(task, userID, role) {
		return nil, ErrForbidden
	}

	if checklist == nil {
		checklist = []models.ChecklistItem{}
	}
	task.TodoChecklist = checklist
	task.RecalcProgress()
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	assignees, err := s.users.GetRefs(ctx, task.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &models.TaskDetail{Task: *task, AssignedTo: assignees}, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *taskService) assigneeRefs(ctx context.Context, tasks []models.Task) (map[int64]models.UserRef, error) {
	seen := map[int64]struct{}{}
	var ids []int64
	for _, t := range tasks {
		for _, id := range t.AssignedTo {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	refs, err := s.users.GetRefs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]models.UserRef, len(refs))
	for _, ref := range refs {
		out[ref.ID] = ref
	}
	return out, nil
}

func pickRefs(refs map[int64]models.UserRef, ids []int64) []models.UserRef {
	out := make([]models.UserRef, 0, len(ids))
	for _, id := range ids {
		if ref, ok := refs[id]; ok {
			out = append(out, ref)
		}
	}
	return out
}
