package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"taskhub/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context, filter models.TaskFilter) (int, error)
	CountByStatus(ctx context.Context, filter models.TaskFilter) (map[models.TaskStatus]int, error)
	CountByPriority(ctx context.Context, filter models.TaskFilter) (map[models.TaskPriority]int, error)
	FindRecent(ctx context.Context, assigneeID *int64, limit int) ([]models.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, priority, status, due_date,
       assigned_to, created_by, attachments, todo_checklist, progress, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	checklist, err := json.Marshal(task.TodoChecklist)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tasks (
			title, description, priority, status, due_date,
			assigned_to, created_by, attachments, todo_checklist, progress,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status, task.DueDate,
		pq.Array(task.AssignedTo), task.CreatedBy, pq.Array(task.Attachments), checklist, task.Progress,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func scanTask(scan func(dest ...interface{}) error) (*models.Task, error) {
	t := &models.Task{}
	var checklist []byte
	err := scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Status, &t.DueDate,
		pq.Array(&t.AssignedTo), &t.CreatedBy, pq.Array(&t.Attachments), &checklist, &t.Progress,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &t.TodoChecklist); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func buildTaskWhere(filter models.TaskFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(assigned_to)", argID))
		args = append(args, *filter.AssigneeID)
		argID++
	}
	for _, st := range filter.Statuses {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, st)
		argID++
	}
	if filter.NotStatus != nil {
		conditions = append(conditions, fmt.Sprintf("status <> $%d", argID))
		args = append(args, *filter.NotStatus)
		argID++
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("due_date < $%d", argID))
		args = append(args, *filter.DueBefore)
		argID++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	where, args := buildTaskWhere(filter)
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Update replaces the whole row. Concurrent writers race and the last
// write wins; there is no compare-and-swap at this layer.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	checklist, err := json.Marshal(task.TodoChecklist)
	if err != nil {
		return err
	}
	query := `
		UPDATE tasks SET
			title=$1, description=$2, priority=$3, status=$4, due_date=$5,
			assigned_to=$6, attachments=$7, todo_checklist=$8, progress=$9, updated_at=$10
		WHERE id=$11`
	_, err = r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status, task.DueDate,
		pq.Array(task.AssignedTo), pq.Array(task.Attachments), checklist, task.Progress, task.UpdatedAt,
		task.ID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) Count(ctx context.Context, filter models.TaskFilter) (int, error) {
	where, args := buildTaskWhere(filter)
	var c int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&c)
	return c, err
}

func (r *taskRepository) CountByStatus(ctx context.Context, filter models.TaskFilter) (map[models.TaskStatus]int, error) {
	where, args := buildTaskWhere(filter)
	query := `SELECT status, COUNT(*) FROM tasks` + where + ` GROUP BY status`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.TaskStatus]int{}
	for rows.Next() {
		var st models.TaskStatus
		var c int
		if err := rows.Scan(&st, &c); err != nil {
			return nil, err
		}
		out[st] = c
	}
	return out, rows.Err()
}

func (r *taskRepository) CountByPriority(ctx context.Context, filter models.TaskFilter) (map[models.TaskPriority]int, error) {
	where, args := buildTaskWhere(filter)
	query := `SELECT priority, COUNT(*) FROM tasks` + where + ` GROUP BY priority`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.TaskPriority]int{}
	for rows.Next() {
		var p models.TaskPriority
		var c int
		if err := rows.Scan(&p, &c); err != nil {
			return nil, err
		}
		out[p] = c
	}
	return out, rows.Err()
}

func (r *taskRepository) FindRecent(ctx context.Context, assigneeID *int64, limit int) ([]models.Task, error) {
	filter := models.TaskFilter{AssigneeID: assigneeID}
	where, args := buildTaskWhere(filter)
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT `+taskColumns+` FROM tasks`+where+` ORDER BY created_at DESC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
