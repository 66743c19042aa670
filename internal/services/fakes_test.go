package services

import (
	"context"
	"sort"
	"sync"

	"taskhub/internal/models"
)

// fakeTaskRepo is an in-memory TaskRepository with the same filter
// semantics as the SQL implementation.
type fakeTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{nextID: 1, tasks: map[int64]models.Task{}}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func matchesFilter(t models.Task, f models.TaskFilter) bool {
	if f.AssigneeID != nil && !t.IsAssignedTo(*f.AssigneeID) {
		return false
	}
	for _, st := range f.Statuses {
		if t.Status != st {
			return false
		}
	}
	if f.NotStatus != nil && t.Status == *f.NotStatus {
		return false
	}
	if f.DueBefore != nil && !t.DueDate.Before(*f.DueBefore) {
		return false
	}
	return true
}

func (r *fakeTaskRepo) matching(f models.TaskFilter) []models.Task {
	var out []models.Task
	for _, t := range r.tasks {
		if matchesFilter(t, f) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *fakeTaskRepo) FindAll(_ context.Context, f models.TaskFilter) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(f), nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) Count(_ context.Context, f models.TaskFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matching(f)), nil
}

func (r *fakeTaskRepo) CountByStatus(_ context.Context, f models.TaskFilter) (map[models.TaskStatus]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[models.TaskStatus]int{}
	for _, t := range r.matching(f) {
		out[t.Status]++
	}
	return out, nil
}

func (r *fakeTaskRepo) CountByPriority(_ context.Context, f models.TaskFilter) (map[models.TaskPriority]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[models.TaskPriority]int{}
	for _, t := range r.matching(f) {
		out[t.Priority]++
	}
	return out, nil
}

func (r *fakeTaskRepo) FindRecent(_ context.Context, assigneeID *int64, limit int) ([]models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(models.TaskFilter{AssigneeID: assigneeID})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]models.User{}}
}

func (r *fakeUserRepo) add(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	*user = r.add(*user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	return r.ListByRole(context.Background(), "")
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.UserRole) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id, u := range r.users {
		if role == "" || u.Role == role {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetRefs(_ context.Context, ids []int64) ([]models.UserRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.UserRef, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Ref())
		}
	}
	return out, nil
}
