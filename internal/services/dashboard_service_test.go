package services

import (
	"context"
	"testing"
	"time"

	"taskhub/internal/models"
)

func seedDashboardTasks(t *testing.T, repo *fakeTaskRepo) {
	t.Helper()
	now := time.Now()
	seed := []models.Task{
		{Title: "late", Status: models.StatusPending, Priority: models.PriorityHigh,
			DueDate: now.Add(-24 * time.Hour), AssignedTo: []int64{2}},
		{Title: "active", Status: models.StatusInProgress, Priority: models.PriorityMedium,
			DueDate: now.Add(24 * time.Hour), AssignedTo: []int64{2}},
		{Title: "done late", Status: models.StatusCompleted, Priority: models.PriorityLow,
			DueDate: now.Add(-48 * time.Hour), AssignedTo: []int64{3}},
		{Title: "queued", Status: models.StatusPending, Priority: models.PriorityMedium,
			DueDate: now.Add(72 * time.Hour), AssignedTo: []int64{3}},
	}
	for i := range seed {
		seed[i].CreatedAt = now.Add(time.Duration(i) * time.Minute)
		if err := repo.Store(context.Background(), &seed[i]); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
}

func TestOverview(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	seedDashboardTasks(t, tasks)
	svc := NewDashboardService(tasks, users)

	data, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	st := data.Statistics
	if st.TotalTasks != 4 || st.PendingTasks != 2 || st.InProgressTasks != 1 || st.CompletedTasks != 1 {
		t.Errorf("statistics = %+v", st)
	}
	// only the pending past-due task counts; the completed one is excluded
	if st.OverdueTasks != 1 {
		t.Errorf("overdueTasks = %d, want 1", st.OverdueTasks)
	}

	dist := data.Charts.TaskDistribution
	if dist["Pending"] != 2 || dist["InProgress"] != 1 || dist["Completed"] != 1 || dist["All"] != 4 {
		t.Errorf("taskDistribution = %v", dist)
	}
	if dist["Pending"]+dist["InProgress"]+dist["Completed"] != dist["All"] {
		t.Errorf("distribution buckets must sum to All: %v", dist)
	}

	prio := data.Charts.TaskPriorityLevels
	if prio["Low"] != 1 || prio["Medium"] != 2 || prio["High"] != 1 {
		t.Errorf("taskPriorityLevels = %v", prio)
	}

	if len(data.RecentTasks) != 4 {
		t.Fatalf("recentTasks has %d entries, want 4", len(data.RecentTasks))
	}
	if data.RecentTasks[0].Title != "queued" {
		t.Errorf("recent tasks must be newest first, got %q", data.RecentTasks[0].Title)
	}
	if data.RecentTasks[0].AssignedTo != nil {
		t.Error("global view must not expand assignees")
	}
}

func TestOverviewZeroFillsEmptyStore(t *testing.T) {
	svc := NewDashboardService(newFakeTaskRepo(), newFakeUserRepo())

	data, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	dist := data.Charts.TaskDistribution
	for _, key := range []string{"Pending", "InProgress", "Completed", "All"} {
		if v, ok := dist[key]; !ok || v != 0 {
			t.Errorf("taskDistribution[%q] = %d (present=%v), want zero-filled", key, v, ok)
		}
	}
	prio := data.Charts.TaskPriorityLevels
	for _, key := range []string{"Low", "Medium", "High"} {
		if v, ok := prio[key]; !ok || v != 0 {
			t.Errorf("taskPriorityLevels[%q] = %d (present=%v), want zero-filled", key, v, ok)
		}
	}
	if len(data.RecentTasks) != 0 {
		t.Errorf("recentTasks = %v, want empty", data.RecentTasks)
	}
}

func TestUserOverviewScopesToAssignee(t *testing.T) {
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	users.add(models.User{ID: 2, Name: "Mara", Email: "mara@x.io", Role: models.RoleMember})
	seedDashboardTasks(t, tasks)
	svc := NewDashboardService(tasks, users)

	data, err := svc.UserOverview(context.Background(), 2)
	if err != nil {
		t.Fatalf("UserOverview: %v", err)
	}

	st := data.Statistics
	if st.TotalTasks != 2 || st.PendingTasks != 1 || st.InProgressTasks != 1 || st.CompletedTasks != 0 {
		t.Errorf("statistics = %+v", st)
	}
	if st.OverdueTasks != 1 {
		t.Errorf("overdueTasks = %d, want 1", st.OverdueTasks)
	}
	if data.Charts.TaskDistribution["All"] != 2 {
		t.Errorf("All = %d, want 2", data.Charts.TaskDistribution["All"])
	}

	if len(data.RecentTasks) != 2 {
		t.Fatalf("recentTasks has %d entries, want 2", len(data.RecentTasks))
	}
	for _, rt := range data.RecentTasks {
		if len(rt.AssignedTo) != 1 || rt.AssignedTo[0].Name != "Mara" {
			t.Errorf("member view must expand assignees, got %v", rt.AssignedTo)
		}
	}
}

func TestOverviewLimitsRecentTasks(t *testing.T) {
	tasks := newFakeTaskRepo()
	now := time.Now()
	for i := 0; i < recentTaskLimit+3; i++ {
		task := models.Task{
			Title:     "t",
			Status:    models.StatusPending,
			Priority:  models.PriorityLow,
			DueDate:   now.Add(time.Hour),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := tasks.Store(context.Background(), &task); err != nil {
			t.Fatalf("Store: %v", err)
		}
	}
	svc := NewDashboardService(tasks, newFakeUserRepo())

	data, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(data.RecentTasks) != recentTaskLimit {
		t.Errorf("recentTasks has %d entries, want %d", len(data.RecentTasks), recentTaskLimit)
	}
}
