package services

import (
	"context"
	"time"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

type DashboardStatistics struct {
	TotalTasks      int `json:"totalTasks"`
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
	OverdueTasks    int `json:"overdueTasks"`
}

type DashboardCharts struct {
	TaskDistribution   map[string]int `json:"taskDistribution"`
	TaskPriorityLevels map[string]int `json:"taskPriorityLevels"`
}

// RecentTask is the projection used for the ten most recent tasks.
// AssignedTo is expanded on the member view only.
type RecentTask struct {
	ID         int64               `json:"id"`
	Title      string              `json:"title"`
	Status     models.TaskStatus   `json:"status"`
	Priority   models.TaskPriority `json:"priority"`
	DueDate    time.Time           `json:"dueDate"`
	CreatedAt  time.Time           `json:"createdAt"`
	AssignedTo []models.UserRef    `json:"assignedTo,omitempty"`
}

type DashboardData struct {
	Statistics  DashboardStatistics `json:"statistics"`
	Charts      DashboardCharts     `json:"charts"`
	RecentTasks []RecentTask        `json:"recentTasks"`
}

// DashboardService is a read-only projection over the task store. Nothing
// is cached; every call recomputes.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardData, error)
	UserOverview(ctx context.Context, userID int64) (*DashboardData, error)
}

type dashboardService struct {
	tasks repositories.TaskRepository
	users repositories.UserRepository
}

func NewDashboardService(tasks repositories.TaskRepository, users repositories.UserRepository) DashboardService {
	return &dashboardService{tasks: tasks, users: users}
}

const recentTaskLimit = 10

func (s *dashboardService) Overview(ctx context.Context) (*DashboardData, error) {
	return s.build(ctx, nil)
}

func (s *dashboardService) UserOverview(ctx context.Context, userID int64) (*DashboardData, error) {
	return s.build(ctx, &userID)
}

func (s *dashboardService) build(ctx context.Context, assigneeID *int64) (*DashboardData, error) {
	scope := models.TaskFilter{AssigneeID: assigneeID}

	total, err := s.tasks.Count(ctx, scope)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.tasks.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.tasks.CountByPriority(ctx, scope)
	if err != nil {
		return nil, err
	}

	notCompleted := models.StatusCompleted
	now := time.Now()
	overdue, err := s.tasks.Count(ctx, models.TaskFilter{
		AssigneeID: assigneeID,
		NotStatus:  &notCompleted,
		DueBefore:  &now,
	})
	if err != nil {
		return nil, err
	}

	// zero-filled distributions; status keys lose their spaces
	distribution := map[string]int{
		"Pending":    byStatus[models.StatusPending],
		"InProgress": byStatus[models.StatusInProgress],
		"Completed":  byStatus[models.StatusCompleted],
		"All":        total,
	}
	priorities := map[string]int{
		"Low":    byPriority[models.PriorityLow],
		"Medium": byPriority[models.PriorityMedium],
		"High":   byPriority[models.PriorityHigh],
	}

	recent, err := s.tasks.FindRecent(ctx, assigneeID, recentTaskLimit)
	if err != nil {
		return nil, err
	}
	recentTasks := make([]RecentTask, 0, len(recent))
	for _, t := range recent {
		rt := RecentTask{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			DueDate:   t.DueDate,
			CreatedAt: t.CreatedAt,
		}
		if assigneeID != nil {
			refs, err := s.users.GetRefs(ctx, t.AssignedTo)
			if err != nil {
				return nil, err
			}
			rt.AssignedTo = refs
		}
		recentTasks = append(recentTasks, rt)
	}

	return &DashboardData{
		Statistics: DashboardStatistics{
			TotalTasks:      total,
			PendingTasks:    byStatus[models.StatusPending],
			InProgressTasks: byStatus[models.StatusInProgress],
			CompletedTasks:  byStatus[models.StatusCompleted],
			OverdueTasks:    overdue,
		},
		Charts: DashboardCharts{
			TaskDistribution:   distribution,
			TaskPriorityLevels: priorities,
		},
		RecentTasks: recentTasks,
	}, nil
}
