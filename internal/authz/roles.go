package authz

import "taskhub/internal/models"

func IsAdmin(role models.UserRole) bool {
	return role == models.RoleAdmin
}

// CanTouchChecklist is the one ownership gate the lifecycle enforces:
// checklist writes require a current assignee or an admin. The full-update
// and status-only paths deliberately skip it.
func CanTouchChecklist(task *models.Task, userID int64, role models.UserRole) bool {
	return IsAdmin(role) || task.IsAssignedTo(userID)
}
